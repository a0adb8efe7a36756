package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	require.NotEmpty(t, site.Title)
	require.Equal(t, "Brayan Reynoso Macedo", site.Owner.Name)
	require.Len(t, site.Owner.Links, 3)
	require.Len(t, site.Projects, 5)
	require.Len(t, site.Education, 2)
	require.NotEmpty(t, site.Technologies)

	p, ok := site.Project("warehouse-master")
	require.True(t, ok)
	require.Equal(t, KindProfessional, p.Kind)
	require.Len(t, p.Images, 3)
	require.Len(t, p.TechStack, 4)
	require.NotEmpty(t, p.Objectives)
	require.NotEmpty(t, p.Architecture)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	site, err := Load("")
	require.NoError(t, err)
	require.Len(t, site.Projects, 5)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	data := `
title = "Test"

[[projects]]
uid = "one"
title = "One"
type = "personal"
images = ["only.png"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	site, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Test", site.Title)
	require.Equal(t, []string{"only.png"}, site.Projects[0].Images)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "no projects",
			data:    `title = "x"`,
			wantErr: "no projects",
		},
		{
			name: "empty image list",
			data: `
[[projects]]
uid = "a"
title = "A"
type = "personal"
images = []
`,
			wantErr: "at least one image",
		},
		{
			name: "duplicate uid",
			data: `
[[projects]]
uid = "a"
title = "A"
type = "personal"
images = ["1.png"]

[[projects]]
uid = "a"
title = "B"
type = "personal"
images = ["2.png"]
`,
			wantErr: "duplicate uid",
		},
		{
			name: "bad kind",
			data: `
[[projects]]
uid = "a"
title = "A"
type = "hobby"
images = ["1.png"]
`,
			wantErr: "type must be",
		},
		{
			name: "unknown key",
			data: `
[[projects]]
uid = "a"
title = "A"
type = "personal"
images = ["1.png"]
imgaes = ["typo.png"]
`,
			wantErr: "unknown content keys: projects.imgaes",
		},
		{
			name:    "syntax",
			data:    `title = `,
			wantErr: "decode content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
