package deeplink

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

type fakeIdentity struct {
	name string
}

func (f fakeIdentity) Name() string { return f.name }

func (f fakeIdentity) Construct(*viewstate.ViewState) (common.View, error) {
	return fakeView{}, nil
}

type fakeView struct{}

func (fakeView) Init() tea.Cmd          { return nil }
func (fakeView) Update(tea.Msg) tea.Cmd { return nil }
func (fakeView) View(_, _ int) string   { return "" }

func resolverFor(names ...string) Resolver {
	known := make(map[string]viewstate.Identity)
	for _, name := range names {
		known[name] = fakeIdentity{name: name}
	}
	return func(name string) (viewstate.Identity, bool) {
		identity, ok := known[name]
		return identity, ok
	}
}

func TestDecode_FullLink(t *testing.T) {
	u := Decode("?Class=Foo&Param-ID=5&Param-Name=Bob&Field-Note=hi", resolverFor("Foo"))

	require.NotNil(t, u.Identity)
	assert.Equal(t, "Foo", u.Identity.Name())
	assert.Equal(t, map[string]any{"ID": 5, "Name": "Bob"}, u.Parameters)
	assert.Equal(t, map[string]string{"Note": "hi"}, u.Fields)
}

func TestDecode_ParamCoercionOrder(t *testing.T) {
	u := Decode("Param-Count=42&Param-Price=12.50&Param-Label=12x", resolverFor())

	assert.Equal(t, 42, u.Parameters["Count"])
	assert.Equal(t, 12.50, u.Parameters["Price"])
	assert.Equal(t, "12x", u.Parameters["Label"])
}

func TestDecode_FieldsStayStrings(t *testing.T) {
	u := Decode("Field-Count=42", resolverFor())

	assert.Equal(t, map[string]string{"Count": "42"}, u.Fields)
}

func TestDecode_UnknownClassLeavesIdentityAbsent(t *testing.T) {
	u := Decode("?Class=DoesNotExist&Param-ID=5", resolverFor("Foo"))

	assert.Nil(t, u.Identity)
	assert.Equal(t, 5, u.Parameters["ID"])
}

func TestDecode_IgnoresUnprefixedKeys(t *testing.T) {
	u := Decode("?Class=Foo&utm_source=mail&Param-=1&Field-=x", resolverFor("Foo"))

	assert.Equal(t, "Foo", u.Identity.Name())
	assert.Empty(t, u.Parameters)
	assert.Empty(t, u.Fields)
}

func TestDecode_EmptyAndMalformedInput(t *testing.T) {
	assert.True(t, Decode("", resolverFor("Foo")).Empty())
	assert.True(t, Decode("?", resolverFor("Foo")).Empty())

	// a broken pair does not discard the pairs that parsed
	u := Decode("Param-ID=5&bad;pair=%zz", resolverFor())
	assert.Equal(t, 5, u.Parameters["ID"])
}

func TestDecode_EscapedValues(t *testing.T) {
	u := Decode("?Class=Foo&Param-Name=Bob%20Smith", resolverFor("Foo"))

	assert.Equal(t, "Bob Smith", u.Parameters["Name"])
}

func TestDecode_NilResolverLeavesIdentityAbsent(t *testing.T) {
	u := Decode("?Class=Foo", nil)
	assert.Nil(t, u.Identity)
}
