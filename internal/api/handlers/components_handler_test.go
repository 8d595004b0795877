package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ona-ui/catalog/internal/models"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

func TestComponentFilters_RejectsUnknownEnums(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"bad status", "status=live"},
		{"bad tier", "requiredTier=platinum"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			_, err = componentFilters(q)
			require.Error(t, err)
			require.True(t, appErr.IsCode(err, appErr.CodeValidation))
		})
	}
}

func TestComponentFilters_AcceptsKnownEnums(t *testing.T) {
	q, err := url.ParseQuery("status=published&requiredTier=pro&framework=react")
	require.NoError(t, err)

	f, err := componentFilters(q)
	require.NoError(t, err)
	require.Equal(t, models.StatusPublished, *f.Status)
	require.Equal(t, models.TierPro, *f.RequiredTier)
	require.Equal(t, "react", f.Framework)
}
