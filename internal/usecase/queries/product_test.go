//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/infra"
	"storefront/internal/pkg/ptr"
	"storefront/internal/usecase/queries"
	queriesmock "storefront/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newProductQueries(t *testing.T) (queries.ProductQueries, *queriesmock.MockProductReadStore, *queriesmock.MockCatalogCache) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockProductReadStore(ctrl)
	cache := queriesmock.NewMockCatalogCache(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	q := queries.NewProductQueries(store, cache, queries.CatalogOptions{
		StorageBaseURL: "http://storage.test",
		PageSize:       20,
	}, logger)
	return q, store, cache
}

func catalog(n int) []queries.ProductView {
	out := make([]queries.ProductView, n)
	for i := range out {
		out[i] = queries.ProductView{ID: int64(i + 1), Title: "p", PriceCents: 1000, Quantity: 5}
	}
	return out
}

func TestProductList_FirstPageUsesCache(t *testing.T) {
	q, store, cache := newProductQueries(t)

	cache.EXPECT().Get(gomock.Any(), false).Return(&queries.CatalogSnapshot{
		Products: catalog(45),
		TakenAt:  time.Now(),
	}, true)
	store.EXPECT().FindPage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	page, err := q.List(context.Background(), queries.ProductListRequest{Page: queries.PageRequest{Page: 1, Limit: 20}})

	require.NoError(t, err)
	assert.True(t, page.Cached)
	assert.Len(t, page.Products, 20)
	assert.Equal(t, int64(45), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestProductList_MissReadsStoreAndRefreshes(t *testing.T) {
	q, store, cache := newProductQueries(t)
	first := catalog(20)
	all := catalog(30)

	cache.EXPECT().Get(gomock.Any(), true).Return(nil, false)
	store.EXPECT().FindPage(gomock.Any(), true, int32(20), int32(0)).Return(first, nil)
	store.EXPECT().Count(gomock.Any(), true).Return(int64(30), nil)
	store.EXPECT().FindAll(gomock.Any(), true).Return(all, nil)
	cache.EXPECT().Put(gomock.Any(), true, gomock.Len(30))

	page, err := q.List(context.Background(), queries.ProductListRequest{
		Featured: true,
		Page:     queries.PageRequest{Page: 1, Limit: 20},
	})

	require.NoError(t, err)
	assert.False(t, page.Cached)
	assert.Equal(t, int64(30), page.Total)
	if diff := cmp.Diff(first, page.Products); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}
}

func TestProductList_RefreshFailureStillServesPage(t *testing.T) {
	q, store, cache := newProductQueries(t)

	cache.EXPECT().Get(gomock.Any(), false).Return(nil, false)
	store.EXPECT().FindPage(gomock.Any(), false, int32(20), int32(0)).Return(catalog(3), nil)
	store.EXPECT().Count(gomock.Any(), false).Return(int64(3), nil)
	store.EXPECT().FindAll(gomock.Any(), false).Return(nil, assert.AnError)
	cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	page, err := q.List(context.Background(), queries.ProductListRequest{Page: queries.PageRequest{Page: 1, Limit: 20}})

	require.NoError(t, err)
	assert.Len(t, page.Products, 3)
}

func TestProductList_OtherPagesBypassCache(t *testing.T) {
	tests := []struct {
		name       string
		page       queries.PageRequest
		wantLimit  int32
		wantOffset int32
	}{
		{name: "second page", page: queries.PageRequest{Page: 2, Limit: 20}, wantLimit: 20, wantOffset: 20},
		{name: "non-default limit", page: queries.PageRequest{Page: 1, Limit: 5}, wantLimit: 5, wantOffset: 0},
		{name: "limit above max is clamped", page: queries.PageRequest{Page: 1, Limit: 1000}, wantLimit: 200, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, store, cache := newProductQueries(t)

			cache.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			store.EXPECT().FindPage(gomock.Any(), false, tt.wantLimit, tt.wantOffset).Return(catalog(2), nil)
			store.EXPECT().Count(gomock.Any(), false).Return(int64(42), nil)

			page, err := q.List(context.Background(), queries.ProductListRequest{Page: tt.page})

			require.NoError(t, err)
			assert.False(t, page.Cached)
			assert.Equal(t, int64(42), page.Total)
		})
	}
}

func TestProductList_InvalidPage(t *testing.T) {
	q, _, _ := newProductQueries(t)

	_, err := q.List(context.Background(), queries.ProductListRequest{Page: queries.PageRequest{Page: 0, Limit: 20}})
	assert.ErrorIs(t, err, queries.ErrInvalidPage)

	_, err = q.List(context.Background(), queries.ProductListRequest{Page: queries.PageRequest{Page: 1, Limit: 0}})
	assert.ErrorIs(t, err, queries.ErrInvalidPage)
}

func TestProductGetByID(t *testing.T) {
	t.Run("resolves storage image path", func(t *testing.T) {
		q, store, _ := newProductQueries(t)
		store.EXPECT().FindByID(gomock.Any(), int64(4)).Return(&queries.ProductView{
			ID:        4,
			ImagePath: ptr.Of("mug.png"),
		}, nil)

		p, err := q.GetByID(context.Background(), 4)

		require.NoError(t, err)
		require.NotNil(t, p.ImageURL)
		assert.Contains(t, *p.ImageURL, "http://storage.test/")
		assert.Contains(t, *p.ImageURL, "products/mug.png")
	})

	t.Run("missing product", func(t *testing.T) {
		q, store, _ := newProductQueries(t)
		store.EXPECT().FindByID(gomock.Any(), int64(9)).Return(nil, infra.NewRepoErr(infra.KindNotFound, "product not found"))

		_, err := q.GetByID(context.Background(), 9)
		assert.ErrorIs(t, err, queries.ErrProductNotFound)
	})

	t.Run("non-positive id never reaches the store", func(t *testing.T) {
		q, _, _ := newProductQueries(t)
		_, err := q.GetByID(context.Background(), 0)
		assert.ErrorIs(t, err, queries.ErrProductNotFound)
	})
}
