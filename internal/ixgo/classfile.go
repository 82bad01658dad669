// Copyright 2024 The llexport Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ixgo

import (
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/mod/modfile"

	_ "github.com/goplus/llexport/internal/ixgo/pkg/github.com/goplus/llexport/profile"
)

func init() {
	xgobuild.RegisterProject(&modfile.Project{
		Ext:   "_export.gox",
		Class: "ExportApp",
		PkgPaths: []string{
			"github.com/goplus/llexport/profile",
		},
	})
}
