package variant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	sessionID := uuid.New()
	assert.NoError(t, (&BioVariant{SessionID: sessionID, AboutText: "Draft one"}).Validate())
	assert.ErrorIs(t, (&BioVariant{SessionID: sessionID}).Validate(), ErrAboutTextRequired)
	assert.ErrorIs(t, (&BioVariant{SessionID: sessionID, AboutText: " \n\t"}).Validate(), ErrAboutTextRequired)
	assert.ErrorIs(t, (&BioVariant{AboutText: "x"}).Validate(), ErrMissingSession)
}

func TestErrAboutTextRequired_MentionsWhitespace(t *testing.T) {
	err := (&BioVariant{SessionID: uuid.New(), AboutText: "   "}).Validate()
	assert.ErrorIs(t, err, ErrAboutTextRequired)
	assert.Contains(t, err.Error(), "whitespace-only")
}

func TestPatch_Validate(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		want  error
	}{
		{"empty", Patch{}, ErrEmptyPatch},
		{"favorite only", Patch{IsFavorite: nullable.NewNullableWithValue(false)}, nil},
		{"clear optional text", Patch{Tone: nullable.NewNullNullable[string]()}, nil},
		{"blank about", Patch{AboutText: nullable.NewNullableWithValue("  ")}, ErrAboutTextRequired},
		{"null about", Patch{AboutText: nullable.NewNullNullable[string]()}, ErrAboutTextRequired},
		{"null favorite", Patch{IsFavorite: nullable.NewNullNullable[bool]()}, ErrFavoriteNull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	label := "A"
	v := &BioVariant{ID: uuid.New(), SessionID: uuid.New(), VariantLabel: &label, AboutText: "old"}

	Patch{AboutText: nullable.NewNullableWithValue("new"), IsFavorite: nullable.NewNullableWithValue(true)}.Apply(v)

	assert.Equal(t, "new", v.AboutText)
	assert.True(t, v.IsFavorite)
	assert.Equal(t, "A", *v.VariantLabel)

	Patch{VariantLabel: nullable.NewNullNullable[string](), Tone: nullable.NewNullableWithValue("warm")}.Apply(v)
	assert.Nil(t, v.VariantLabel)
	assert.Equal(t, "warm", *v.Tone)
	assert.Equal(t, "new", v.AboutText)
}
