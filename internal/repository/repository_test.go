package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightcat/internal/db"
	"lightcat/internal/model"
)

func kellyFamily() []model.Product {
	parent := model.NewVariable(model.Product{
		SKU:          "14126",
		Name:         "Kelly small dome 50",
		Manufacturer: model.Lodes,
	}, model.NewAttributes("Farbe", "Weiß Matt, Schwarz Matt"))
	return []model.Product{
		parent,
		model.NewVariation(model.Product{SKU: "14126 1000", Name: "Kelly small dome 50 Weiß Matt", Manufacturer: model.Lodes, RegularPrice: model.Ptr(572.0)},
			"14126", model.NewAttributes("Farbe", "Weiß Matt")),
		model.NewVariation(model.Product{SKU: "14126 2000", Name: "Kelly small dome 50 Schwarz Matt", Manufacturer: model.Lodes, RegularPrice: model.Ptr(572.0)},
			"14126", model.NewAttributes("Farbe", "Schwarz Matt")),
	}
}

func TestProductArgs(t *testing.T) {
	run := uuid.New()
	family := kellyFamily()

	args, err := productArgs(run, family[0])
	require.NoError(t, err)
	require.Len(t, args, 9)
	assert.Equal(t, run, args[1])
	assert.Equal(t, "14126", args[2])
	assert.Nil(t, args[3])
	assert.Equal(t, "variable", args[4])
	assert.Equal(t, "lodes", args[5])
	assert.Nil(t, args[7])

	args, err = productArgs(run, family[1])
	require.NoError(t, err)
	require.NotNil(t, args[3])
	assert.Equal(t, "14126", *args[3].(*string))
	assert.Equal(t, 572.0, *args[7].(*float64))
	assert.Contains(t, string(args[8].([]byte)), `"parent_sku":"14126"`)
}

func TestProductArgsCleansInvalidUTF8(t *testing.T) {
	p := model.NewSimple(model.Product{SKU: "x", Name: "Kelly\xff"})
	args, err := productArgs(uuid.New(), p)
	require.NoError(t, err)
	assert.Equal(t, "Kelly", args[6])
}

// Integration tests need a disposable database in TEST_DATABASE_URL.
func testDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return url
}

func TestProductRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool, err := db.NewPool(ctx, testDatabaseURL(t))
	require.NoError(t, err)
	defer pool.Close()

	repo := &ProductRepository{DB: pool}
	require.NoError(t, repo.Migrate(ctx))
	_, err = pool.Exec(ctx, "DELETE FROM products WHERE sku = $1 OR parent_sku = $1", "14126")
	require.NoError(t, err)

	run := uuid.New()
	require.NoError(t, repo.SaveAll(ctx, run, kellyFamily()))
	require.NoError(t, repo.SaveAll(ctx, run, kellyFamily()))

	family, err := repo.Family(ctx, "14126")
	require.NoError(t, err)
	require.Len(t, family, 3)
	assert.Equal(t, model.TypeVariable, family[0].Type)
	assert.Equal(t, "14126 1000", family[1].SKU)
	assert.NoError(t, model.ValidateHierarchy(family))

	byRun, err := repo.ByRun(ctx, run)
	require.NoError(t, err)
	assert.Len(t, byRun, 3)
}

func TestProductRepositoryRejectsOrphans(t *testing.T) {
	repo := &ProductRepository{}
	orphan := kellyFamily()[1:]
	assert.ErrorIs(t, repo.SaveAll(context.Background(), uuid.New(), orphan), model.ErrOrphanVariation)
}

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, err := db.New(ctx, testDatabaseURL(t))
	require.NoError(t, err)
	defer conn.Close()

	repo := &SnapshotRepository{DB: conn}
	require.NoError(t, repo.Migrate(ctx))
	_, err = conn.ExecContext(ctx, "DELETE FROM site_snapshots WHERE slug = $1", "kelly")
	require.NoError(t, err)

	s := model.SiteScrape{
		Slug:       "kelly",
		Language:   "en",
		SourceURL:  "https://www.lodes.com/en/products/kelly/",
		Name:       "Kelly",
		Attributes: model.NewAttributes("Designer", "Andrea Tosetto"),
		VariantRows: []model.VariantRow{
			model.NewVariantRow("Kelly small dome 50", "Bianco Opaco – 9010"),
		},
	}
	require.NoError(t, repo.Save(ctx, s))
	s.Name = "Kelly updated"
	require.NoError(t, repo.Save(ctx, s))

	pending, err := repo.Pending(ctx)
	require.NoError(t, err)
	var found *model.SiteScrape
	for i := range pending {
		if pending[i].Slug == "kelly" {
			found = &pending[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Kelly updated", found.Name)
	assert.Equal(t, "Andrea Tosetto", found.Attributes.Value("Designer"))
	require.Len(t, found.VariantRows, 1)

	require.NoError(t, repo.MarkAsProcessed(ctx, "kelly", "en"))
	pending, err = repo.Pending(ctx)
	require.NoError(t, err)
	for _, p := range pending {
		assert.NotEqual(t, "kelly", p.Slug)
	}
}
