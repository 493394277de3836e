package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func catalogFixture() []Product {
	return []Product{
		{ID: "1", Name: "Tee"},
		{ID: "2", Name: "Hoodie"},
		{ID: "3", Name: "Cap"},
	}
}

func TestFindProduct(t *testing.T) {
	products := append(catalogFixture(), Product{ID: "2", Name: "Duplicate"})

	p, ok := FindProduct(products, "2")
	assert.True(t, ok)
	assert.Equal(t, "Hoodie", p.Name)

	_, ok = FindProduct(products, "missing")
	assert.False(t, ok)
}

func TestAppendProductKeepsOrder(t *testing.T) {
	in := catalogFixture()
	out := AppendProduct(in, Product{ID: "4", Name: "Sock"})

	assert.Len(t, in, 3)
	want := append(catalogFixture(), Product{ID: "4", Name: "Sock"})
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("AppendProduct() mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceProduct(t *testing.T) {
	in := catalogFixture()

	out, ok := ReplaceProduct(in, "2", Product{ID: "20", Name: "Zip Hoodie"})
	assert.True(t, ok)
	want := []Product{{ID: "1", Name: "Tee"}, {ID: "20", Name: "Zip Hoodie"}, {ID: "3", Name: "Cap"}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("ReplaceProduct() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Hoodie", in[1].Name, "input must not be modified")

	out, ok = ReplaceProduct(in, "missing", Product{ID: "x"})
	assert.False(t, ok)
	assert.Equal(t, in, out)
}

func TestReplaceProductOnlyFirstMatch(t *testing.T) {
	in := []Product{{ID: "1", Name: "a"}, {ID: "1", Name: "b"}}

	out, ok := ReplaceProduct(in, "1", Product{ID: "1", Name: "c"})
	assert.True(t, ok)
	assert.Equal(t, []Product{{ID: "1", Name: "c"}, {ID: "1", Name: "b"}}, out)
}

func TestRemoveProducts(t *testing.T) {
	in := []Product{{ID: "1"}, {ID: "2"}, {ID: "1"}, {ID: "3"}}

	out, removed := RemoveProducts(in, "1")
	assert.Equal(t, 2, removed)
	assert.Equal(t, []Product{{ID: "2"}, {ID: "3"}}, out)

	out, removed = RemoveProducts(in, "missing")
	assert.Zero(t, removed)
	assert.Equal(t, in, out)
}
