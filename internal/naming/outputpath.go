package naming

import (
	"path/filepath"
	"strings"
)

// PreviewExt is the extension given to every extracted preview.
const PreviewExt = ".jpg"

// OutputPath mirrors rel (a path relative to the input root) under
// outputRoot and swaps its extension for PreviewExt.
//
//	<in>/2024/trip/IMG_0001.CR2  ->  <out>/2024/trip/IMG_0001.jpg
func OutputPath(outputRoot, rel string) string {
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(outputRoot, stem+PreviewExt)
}
