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
		{name: "development build", version: "dev", want: "compass version dev\n"},
		{name: "release build", version: "v1.4.2", want: "compass version v1.4.2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := version
			version = tt.version
			t.Cleanup(func() { version = original })

			out, err := run(t, nil, "version")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVersionCmd_SkipsServices(t *testing.T) {
	assert.Equal(t, "true", versionCmd.Annotations[noServicesAnnotation])
}
