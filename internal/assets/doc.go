// Package assets provides the stylesheets and page layouts used to wrap
// compiled fragments into standalone HTML pages.
//
// Assets live in two families, each under its own directory:
//
//	styles/{name}.css     page stylesheets ("default", "plain")
//	layouts/{name}.html   html/template page layouts ("page")
//
// The built-in set is embedded in the binary. A site can ship its own
// directory with the same layout; AssetResolver reads it first and falls
// back to the embedded set for anything it does not define, so overriding
// only layouts/page.html keeps the built-in styles.
//
// Custom directories are read through os.Root, so a symlink pointing
// outside the directory cannot be followed. Asset names are plain words;
// separators and dots are rejected before any file is opened.
package assets
