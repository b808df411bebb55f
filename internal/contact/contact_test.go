package contact

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTrims(t *testing.T) {
	form := Parse(url.Values{
		"name":    {"  Leela "},
		"email":   {"leela@example.com"},
		"message": {"\nA small house.\n"},
	})
	require.Equal(t, "Leela", form.Name)
	require.Equal(t, "A small house.", form.Message)
	require.Empty(t, form.Phone)
	require.Equal(t, "leela@example.com", form.Values()["email"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want []string
	}{
		{name: "empty", form: Form{}, want: []string{"email", "message", "name"}},
		{name: "bad email", form: Form{Name: "A", Email: "nope", Message: "hi"}, want: []string{"email"}},
		{name: "phone optional", form: Form{Name: "A", Email: "a@b.c", Message: "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			var keys []string
			for k := range errs {
				keys = append(keys, k)
			}
			require.ElementsMatch(t, tt.want, keys)
		})
	}
}

func TestSubmit(t *testing.T) {
	_, err := Submit(context.Background(), Form{Name: "A"})
	require.ErrorIs(t, err, ErrInvalid)

	sub, err := Submit(context.Background(), Form{Name: "A", Email: "a@b.c", Message: "hi"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(sub.ID, "enq_"))
	require.Len(t, sub.ID, len("enq_")+26)
	require.False(t, sub.SubmittedAt.IsZero())
}
