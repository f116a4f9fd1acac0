package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"release build", "1.4.0", "resumechat version 1.4.0\n"},
		{"dev build", "dev", "resumechat version dev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := version
			SetVersion(tt.version)
			t.Cleanup(func() { version = orig })

			out, err := execute(t, "", "version")

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
