package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "http://localhost:8080", "-x", "nope"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://localhost:8080"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.yaml", "-a=addr"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.yaml"},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-a", "-i", "30"},
			allowed: []string{"-a", "-i"},
			want:    []string{"-a", "-i", "30"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "x"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}

func TestConfigFileFlags(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"cli", "-c", "conf.json", "-a", "addr"}
	assert.Equal(t, "conf.json", ConfigFileFlags())

	os.Args = []string{"cli", "-config=conf.yaml"}
	assert.Equal(t, "conf.yaml", ConfigFileFlags())

	os.Args = []string{"cli", "-a", "addr"}
	assert.Equal(t, "", ConfigFileFlags())
}
