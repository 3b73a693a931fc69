package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/derob357/sisters-promise/internal/square"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider records calls so tests can assert that validation failures
// never reach the upstream.
type stubProvider struct {
	listObjects []square.CatalogObject
	listErr     error
	getObject   *square.CatalogObject
	getErr      error
	listCalls   int
	getCalls    int
}

func (s *stubProvider) ListItems(ctx context.Context) ([]square.CatalogObject, error) {
	s.listCalls++
	return s.listObjects, s.listErr
}

func (s *stubProvider) GetItem(ctx context.Context, id string) (*square.CatalogObject, error) {
	s.getCalls++
	return s.getObject, s.getErr
}

func item(id, name string, amount int64) square.CatalogObject {
	return square.CatalogObject{
		Type: "ITEM",
		ID:   id,
		ItemData: &square.ItemData{
			Name: name,
			Variations: []square.CatalogObject{
				{
					Type: "ITEM_VARIATION",
					ID:   id + "_VAR",
					ItemVariationData: &square.ItemVariationData{
						PriceMoney: &square.Money{Amount: amount, Currency: "USD"},
					},
				},
			},
		},
	}
}

func TestListFiltersAndMaps(t *testing.T) {
	provider := &stubProvider{
		listObjects: []square.CatalogObject{
			item("ITEM_1", "Candle", 1299),
			{Type: "CATEGORY", ID: "CAT_1"},
			item("ITEM_2", "Soap", 799),
		},
	}

	products, err := NewService(provider).List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "ITEM_1", products[0].ID)
	assert.Equal(t, "Candle", products[0].Name)
	require.Len(t, products[0].Variations, 1)
	assert.Equal(t, int64(1299), products[0].Variations[0].Amount)
	assert.Equal(t, "USD", products[0].Variations[0].Currency)
}

func TestListTruncatesAtLimit(t *testing.T) {
	provider := &stubProvider{}
	for i := 0; i < maxProducts+20; i++ {
		provider.listObjects = append(provider.listObjects,
			item(fmt.Sprintf("ITEM_%03d", i), "Bulk", 100))
	}

	products, err := NewService(provider).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, maxProducts)
}

func TestListUpstreamFailure(t *testing.T) {
	provider := &stubProvider{listErr: fmt.Errorf("dial tcp: connection refused")}

	_, err := NewService(provider).List(context.Background())
	assert.Error(t, err)
}

func TestGetRejectsShortID(t *testing.T) {
	provider := &stubProvider{}

	_, err := NewService(provider).Get(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Zero(t, provider.getCalls, "no upstream call for an invalid id")
}

func TestGetRejectsSanitizedShortID(t *testing.T) {
	provider := &stubProvider{}

	// The id is long enough raw but collapses below the minimum once the
	// injection characters are stripped.
	_, err := NewService(provider).Get(context.Background(), `<<"a">>`)
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Zero(t, provider.getCalls)
}

func TestGetMapsItem(t *testing.T) {
	obj := item("ITEM_9", "Gift Box", 2500)
	obj.ItemData.EcomImageURIs = []string{"https://img.example.com/gift.jpg"}
	obj.ItemData.CategoryID = "CAT_GIFTS"
	provider := &stubProvider{getObject: &obj}

	p, err := NewService(provider).Get(context.Background(), "ITEM_9")
	require.NoError(t, err)
	assert.Equal(t, "Gift Box", p.Name)
	assert.Equal(t, "https://img.example.com/gift.jpg", p.ImageURL)
	assert.Equal(t, "CAT_GIFTS", p.CategoryID)
}

func TestGetNonItemIsNotFound(t *testing.T) {
	provider := &stubProvider{
		getObject: &square.CatalogObject{Type: "CATEGORY", ID: "CAT_1"},
	}

	_, err := NewService(provider).Get(context.Background(), "CAT_1x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUpstreamNotFound(t *testing.T) {
	provider := &stubProvider{getErr: square.ErrNotFound}

	_, err := NewService(provider).Get(context.Background(), "MISSING_1")
	assert.ErrorIs(t, err, ErrNotFound)
}
