package domain

import (
	"strings"
	"testing"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/stretchr/testify/require"
)

func Test_ValidationProvider_Validates_Per_Attribute_Type(t *testing.T) {
	options := []string{"red", "blue", "green"}

	cases := []struct {
		name      string
		attribute Attribute
		value     string
		valid     bool
	}{
		{"text", Attribute{Type: TextType}, "Blue", true},
		{"text too long", Attribute{Type: TextType}, strings.Repeat("a", 256), false},
		{"textarea", Attribute{Type: TextareaType}, strings.Repeat("a", 1000), true},
		{"numeric", Attribute{Type: NumericType}, "12.5", true},
		{"numeric garbage", Attribute{Type: NumericType}, "Blue", false},
		{"numeric not a number", Attribute{Type: NumericType}, "NaN", false},
		{"numeric infinity", Attribute{Type: NumericType}, "-Inf", false},
		{"unit", Attribute{Type: UnitType}, "-3", true},
		{"unit infinity", Attribute{Type: UnitType}, "Inf", false},
		{"price", Attribute{Type: PriceType}, "9.99", true},
		{"negative price", Attribute{Type: PriceType}, "-1", false},
		{"infinite price", Attribute{Type: PriceType}, "+Inf", false},
		{"price not a number", Attribute{Type: PriceType}, "nan", false},
		{"date default format", Attribute{Type: DateType}, "2019-05-01", true},
		{"date wrong format", Attribute{Type: DateType}, "01/05/2019", false},
		{"date custom format", Attribute{Type: DateType, Parameters: map[string]string{DateFormatParameter: "02/01/2006"}}, "01/05/2019", true},
		{"select", Attribute{Type: SelectType, Options: options}, "red", true},
		{"select unknown", Attribute{Type: SelectType, Options: options}, "pink", false},
		{"multi select", Attribute{Type: MultiSelectType, Options: options}, "red, green", true},
		{"multi select unknown", Attribute{Type: MultiSelectType, Options: options}, "red,pink", false},
		{"image", Attribute{Type: ImageType}, "3fa85f64-5717-4562-b3fc-2c963f66afa6", true},
		{"image garbage", Attribute{Type: ImageType}, "picture.png", false},
	}

	provider := NewValidationProvider()

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// Arrange
			validator, err := provider.Provide(c.attribute)
			require.NoError(t, err)

			// Act
			valid := validator.IsValid(c.attribute, c.value)

			// Assert
			require.Equal(t, c.valid, valid)
		})
	}
}

func Test_ValidationProvider_Fails_For_Unknown_Type(t *testing.T) {
	_, err := NewValidationProvider().Provide(Attribute{Type: "HOLOGRAM"})
	require.Error(t, err)
}

func Test_AttributeIDFromKey_Is_Stable_Per_Code(t *testing.T) {
	require.Equal(t, AttributeIDFromKey("color"), AttributeIDFromKey("color"))
	require.NotEqual(t, AttributeIDFromKey("color"), AttributeIDFromKey("size"))
}

func Test_Attribute_Label_Falls_Back_To_Code(t *testing.T) {
	attribute := Attribute{Code: "color", Labels: map[core.Language]string{"PL": "Kolor"}}

	require.Equal(t, "Kolor", attribute.Label("PL"))
	require.Equal(t, "color", attribute.Label("EN"))
}
