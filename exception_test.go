// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/raii"
)

func TestExceptionErrorFallsBackToDefaultMessage(t *testing.T) {
	d := raii.NewDescriptor("disk_full", "no space left on device")
	exc := &raii.Exception{Descriptor: d, File: "x.go", Line: 10}
	if !strings.Contains(exc.Error(), "no space left on device") {
		t.Fatalf("Error() = %q, want it to contain the default message", exc.Error())
	}
}

func TestExceptionErrorPrefersExplicitMessage(t *testing.T) {
	d := raii.NewDescriptor("disk_full", "no space left on device")
	exc := &raii.Exception{Descriptor: d, File: "x.go", Line: 10, Message: "/var is at 100%"}
	got := exc.Error()
	if !strings.Contains(got, "/var is at 100%") {
		t.Fatalf("Error() = %q, want the explicit message", got)
	}
	if strings.Contains(got, "no space left on device") {
		t.Fatalf("Error() = %q, explicit message should replace the default, not append to it", got)
	}
}
