package seo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	defaults := Meta{Title: "Site", Description: "About the site"}

	tests := []struct {
		name string
		in   Meta
		want Meta
	}{
		{
			name: "all defaults",
			in:   Meta{},
			want: Meta{Title: "Site", Description: "About the site", Icon: DefaultIcon},
		},
		{
			name: "page values win",
			in:   Meta{Title: "Home", Description: "Welcome", Icon: "/icon.svg"},
			want: Meta{Title: "Home", Description: "Welcome", Icon: "/icon.svg"},
		},
		{
			name: "blank title falls back",
			in:   Meta{Title: "   "},
			want: Meta{Title: "Site", Description: "About the site", Icon: DefaultIcon},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.in, defaults))
		})
	}
}

func TestPageTitle(t *testing.T) {
	require.Equal(t, "Home | Folio", PageTitle("Home", "Folio"))
	require.Equal(t, "Folio", PageTitle("", "Folio"))
	require.Equal(t, "Home", PageTitle("Home", ""))
}
