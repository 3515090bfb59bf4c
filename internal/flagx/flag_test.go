package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-a", "http://localhost:5000/api", "-x", "junk"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://localhost:5000/api"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--addr=http://h", "-other=1"},
			allowed: []string{"--addr"},
			want:    []string{"--addr=http://h"},
		},
		{
			name:    "flag without value",
			args:    []string{"-v", "-a", "x"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "x"},
			allowed: []string{},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FilterArgs(tc.args, tc.allowed)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"prog", "-c", "conf.json", "-a", "addr"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"prog", "--config=other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"prog", "-a", "addr"}
	require.Equal(t, "", JsonConfigFlags())
}
