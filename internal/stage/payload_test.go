package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentCurator/internal/domain"
)

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		text    string
		want    domain.Summary
		wantErr bool
	}{
		{name: "pure json", text: `{"title":"A","description":"B"}`, want: domain.Summary{Title: "A", Description: "B"}},
		{name: "padded", text: "\n  {\"title\":\"A\",\"description\":\"B\"}  \n", want: domain.Summary{Title: "A", Description: "B"}},
		{name: "prose around", text: `Here you go: {"title":"A","description":"B"} hope it helps`, want: domain.Summary{Title: "A", Description: "B"}},
		{name: "nested braces", text: `Result: {"title":"A {1}","description":"B"}.`, want: domain.Summary{Title: "A {1}", Description: "B"}},
		{name: "no object", text: "nothing here", wantErr: true},
		{name: "unbalanced", text: "} backwards {", wantErr: true},
		{name: "two objects", text: `{"title":"A"} and {"title":"B"}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got domain.Summary
			err := decodePayload(tc.text, &got)
			if tc.wantErr {
				var decodeErr *domain.DecodeError
				require.ErrorAs(t, err, &decodeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRequireFields(t *testing.T) {
	t.Parallel()

	assert.NoError(t, requireFields(field{"a", "x"}, field{"b", "y"}))

	err := requireFields(field{"a", "x"}, field{"b", " "}, field{"c", ""})
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "b", validation.Field)
}
