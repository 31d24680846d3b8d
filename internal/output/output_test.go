// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetExitCode(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"user error", NewUserError(errors.New("unknown tag")), ExitUserError},
		{"system error", NewSystemError("writing post", cause), ExitSystemError},
		{"wrapped system error", fmt.Errorf("export: %w", NewSystemError("x", cause)), ExitSystemError},
		{"plain error", errors.New("bad flag"), ExitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewSystemError("writing post", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "writing post: disk full", err.Error())

	user := NewUserError(cause)
	assert.Equal(t, "disk full", user.Error())
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Success("exported %d posts", 3)
	p.Warning("image %s missing", "a.png")
	p.KeyValue("posts", 3)
	p.Dim("done")

	assert.Equal(t,
		"exported 3 posts\n"+
			"warning: image a.png missing\n"+
			"posts          3\n"+
			"done\n",
		buf.String())
}
