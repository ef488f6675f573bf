// Package records3 serves locale records stored in S3-compatible object
// storage (AWS S3, MinIO, R2, ...).
//
// Every record is one object named {Prefix}{id}.json (or .yaml when Format
// is YAML). Objects are decoded with the localedata document conventions, so
// aliases are written as {"@alias": "calendars/gregorian"}.
//
// # Usage
//
//	src, err := records3.New(records3.Config{
//	    Bucket:    "locale-data",
//	    AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//	    SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	    Prefix:    "cldr/v46/",
//	})
//	if err != nil {
//	    return err
//	}
//	cache := localedata.New(src)
//
// For MinIO, set Endpoint and PathStyle:
//
//	records3.Config{
//	    Endpoint:  "http://localhost:9000",
//	    PathStyle: true,
//	    ...
//	}
//
// # Errors
//
// A missing object matches localedata.ErrRecordNotFound. Other failures match
// ErrAccessDenied, ErrReadFailed, ErrListFailed, ErrRecordTooLarge or
// ErrInvalidObject.
package records3
