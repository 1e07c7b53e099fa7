// Package naming maps RAW input paths to their mirrored JPEG output paths
// and keeps concurrent tasks from claiming the same output file.
package naming
