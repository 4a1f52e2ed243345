package tables

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProductEffectivePrice(t *testing.T) {
	price := func(v int64) *int64 { return &v }

	t.Run("no discount", func(t *testing.T) {
		p := Product{Price: 2000}
		assert.Equal(t, int64(2000), p.EffectivePrice())
	})

	t.Run("discount lower than price", func(t *testing.T) {
		p := Product{Price: 2000, DiscountPrice: price(1500)}
		assert.Equal(t, int64(1500), p.EffectivePrice())
	})

	t.Run("discount equal to price is ignored", func(t *testing.T) {
		p := Product{Price: 2000, DiscountPrice: price(2000)}
		assert.Equal(t, int64(2000), p.EffectivePrice())
	})

	t.Run("discount above price is ignored", func(t *testing.T) {
		p := Product{Price: 2000, DiscountPrice: price(2500)}
		assert.Equal(t, int64(2000), p.EffectivePrice())
	})

	t.Run("zero discount is ignored", func(t *testing.T) {
		p := Product{Price: 2000, DiscountPrice: price(0)}
		assert.Equal(t, int64(2000), p.EffectivePrice())
	})
}

func TestSetDefaultColorLink(t *testing.T) {
	newLinks := func() []*ProductColor {
		return []*ProductColor{
			{Id: uuid.New()},
			{Id: uuid.New(), IsDefault: true},
			{Id: uuid.New()},
		}
	}

	t.Run("sets target and clears siblings", func(t *testing.T) {
		links := newLinks()
		ok := SetDefaultColorLink(links, links[2].Id)

		assert.True(t, ok)
		assert.False(t, links[0].IsDefault)
		assert.False(t, links[1].IsDefault)
		assert.True(t, links[2].IsDefault)
	})

	t.Run("idempotent on the current default", func(t *testing.T) {
		links := newLinks()
		ok := SetDefaultColorLink(links, links[1].Id)

		assert.True(t, ok)
		assert.False(t, links[0].IsDefault)
		assert.True(t, links[1].IsDefault)
		assert.False(t, links[2].IsDefault)
	})

	t.Run("unknown id leaves links untouched", func(t *testing.T) {
		links := newLinks()
		ok := SetDefaultColorLink(links, uuid.New())

		assert.False(t, ok)
		assert.False(t, links[0].IsDefault)
		assert.True(t, links[1].IsDefault)
		assert.False(t, links[2].IsDefault)
	})
}
