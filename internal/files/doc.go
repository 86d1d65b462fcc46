// Package files groups the file handling sub-packages:
//   - filesystem: filesystem abstraction (OS and in-memory) with atomic writes
//   - walker: discovery of files to sign by extension
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/htmlsign/internal/files/filesystem"
//	    "github.com/vvka-141/htmlsign/internal/files/walker"
//	)
//
//	w := walker.NewWalkerWithFS(filesystem.NewOSFileSystem())
//	result, err := w.Walk("./public", []string{".html", ".htm"})
package files
