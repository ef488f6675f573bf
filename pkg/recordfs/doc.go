// Package recordfs serves locale records stored as files in an fs.FS.
//
// Each identifier is one file at the top of the directory, named after the
// identifier: {id}.yaml, {id}.yml or {id}.json. Subdirectories and files with
// other extensions are ignored.
//
//	locales/root.yaml
//	locales/en.yaml
//	locales/en_US.json
//
// Usage:
//
//	src, err := recordfs.New(os.DirFS("data"), recordfs.WithDir("locales"))
//	if err != nil {
//	    return err
//	}
//	cache := localedata.New(src)
//
// Embedded data works the same way:
//
//	//go:embed locales
//	var locales embed.FS
//
//	src, err := recordfs.New(locales, recordfs.WithDir("locales"))
package recordfs
