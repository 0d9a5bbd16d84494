package main

import (
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

type seedVariant struct {
	weight     float64
	weightUnit string
	sku        string
	stock      int
	mrp        string
	discount   int
}

type seedProduct struct {
	asin        string
	name        string
	slug        string
	category    string
	brand       string
	region      string
	description string
	origin      string
	images      []string
	variants    []seedVariant
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "Spices & Masalas", Slug: "spices-masalas"},
		{Name: "Dry Fruits & Nuts", Slug: "dry-fruits-nuts"},
		{Name: "Pulses & Grains", Slug: "pulses-grains"},
		{Name: "Snacks & Beverages", Slug: "snacks-beverages"},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []seedProduct{
		{
			asin:        "B0SFTURM01",
			name:        "Organic Turmeric Powder",
			slug:        "organic-turmeric-powder",
			category:    "spices-masalas",
			brand:       "Svarna",
			region:      "Erode",
			description: "Single-origin turmeric, stone ground and lab tested for curcumin content.",
			origin:      "India",
			images: []string{
				"https://cdn.example.com/products/turmeric-1.jpg",
				"https://cdn.example.com/products/turmeric-2.jpg",
			},
			variants: []seedVariant{
				{weight: 100, weightUnit: constants.WeightUnitGram, sku: "SF-TUR-100", stock: 120, mrp: "120", discount: 17},
				{weight: 250, weightUnit: constants.WeightUnitGram, sku: "SF-TUR-250", stock: 80, mrp: "280", discount: 20},
				{weight: 500, weightUnit: constants.WeightUnitGram, sku: "SF-TUR-500", stock: 40, mrp: "520", discount: 23},
			},
		},
		{
			asin:        "B0SFKASH02",
			name:        "Kashmiri Red Chilli Powder",
			slug:        "kashmiri-red-chilli-powder",
			category:    "spices-masalas",
			brand:       "Svarna",
			region:      "Kashmir",
			description: "Mild heat, deep colour. Sun dried and ground in small batches.",
			origin:      "India",
			images: []string{
				"https://cdn.example.com/products/chilli-1.jpg",
			},
			variants: []seedVariant{
				{weight: 100, weightUnit: constants.WeightUnitGram, sku: "SF-CHL-100", stock: 150, mrp: "150", discount: 13},
				{weight: 250, weightUnit: constants.WeightUnitGram, sku: "SF-CHL-250", stock: 90, mrp: "340", discount: 15},
			},
		},
		{
			asin:        "B0SFALMD03",
			name:        "California Almonds",
			slug:        "california-almonds",
			category:    "dry-fruits-nuts",
			brand:       "NutBarn",
			region:      "California",
			description: "Premium grade whole almonds, vacuum packed for freshness.",
			origin:      "USA",
			images: []string{
				"https://cdn.example.com/products/almonds-1.jpg",
			},
			variants: []seedVariant{
				{weight: 250, weightUnit: constants.WeightUnitGram, sku: "SF-ALM-250", stock: 200, mrp: "360", discount: 10},
				{weight: 500, weightUnit: constants.WeightUnitGram, sku: "SF-ALM-500", stock: 110, mrp: "680", discount: 12},
				{weight: 1, weightUnit: constants.WeightUnitKilogram, sku: "SF-ALM-1K", stock: 60, mrp: "1300", discount: 15},
			},
		},
		{
			asin:        "B0SFTOOR04",
			name:        "Unpolished Toor Dal",
			slug:        "unpolished-toor-dal",
			category:    "pulses-grains",
			brand:       "FarmTrail",
			region:      "Gulbarga",
			description: "Unpolished, protein rich toor dal sourced directly from farmer collectives.",
			origin:      "India",
			images: []string{
				"https://cdn.example.com/products/toor-1.jpg",
			},
			variants: []seedVariant{
				{weight: 500, weightUnit: constants.WeightUnitGram, sku: "SF-TOR-500", stock: 140, mrp: "110", discount: 9},
				{weight: 1, weightUnit: constants.WeightUnitKilogram, sku: "SF-TOR-1K", stock: 100, mrp: "210", discount: 10},
			},
		},
		{
			asin:        "B0SFCHAI05",
			name:        "Assam Masala Chai",
			slug:        "assam-masala-chai",
			category:    "snacks-beverages",
			brand:       "Brewline",
			region:      "Assam",
			description: "CTC Assam tea blended with cardamom, ginger and cinnamon.",
			origin:      "India",
			images: []string{
				"https://cdn.example.com/products/chai-1.jpg",
			},
			variants: []seedVariant{
				{weight: 250, weightUnit: constants.WeightUnitGram, sku: "SF-CHA-250", stock: 90, mrp: "240", discount: 17},
				{weight: 500, weightUnit: constants.WeightUnitGram, sku: "SF-CHA-500", stock: 50, mrp: "450", discount: 20},
			},
		},
	}

	for _, seed := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", seed.slug).First(&existing).Error; err == nil {
			stdLog.Printf("product already exists: %s", seed.slug)
			continue
		}

		product := models.Product{
			ASIN:            seed.asin,
			Name:            seed.name,
			Slug:            seed.slug,
			CategoryID:      categoryIDs[seed.category],
			Brand:           seed.brand,
			Region:          seed.region,
			Description:     seed.description,
			CountryOfOrigin: seed.origin,
		}
		for order, url := range seed.images {
			product.Images = append(product.Images, models.ProductImage{
				ImageURL:     url,
				DisplayOrder: order,
			})
		}
		for _, v := range seed.variants {
			product.Variants = append(product.Variants, models.ProductVariant{
				Weight:     v.weight,
				WeightUnit: v.weightUnit,
				SKU:        v.sku,
				Stock:      v.stock,
				Pricing:    buildPricing(v),
			})
		}

		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("failed to create product %s: %v", seed.slug, err)
			continue
		}
		stdLog.Printf("created product: %s (%d variants)", seed.slug, len(product.Variants))
	}

	stdLog.Printf("seed complete")
}

func buildPricing(v seedVariant) *models.ProductPricing {
	mrp, err := decimal.NewFromString(v.mrp)
	if err != nil {
		mrp = decimal.Zero
	}
	discount := decimal.NewFromInt(int64(v.discount)).Div(decimal.NewFromInt(100))
	effective := mrp.Sub(mrp.Mul(discount)).Round(2)

	grams := decimal.NewFromFloat(v.weight)
	if v.weightUnit == constants.WeightUnitKilogram || v.weightUnit == constants.WeightUnitLiter {
		grams = grams.Mul(decimal.NewFromInt(1000))
	}
	costPerGram := decimal.Zero
	if grams.IsPositive() {
		costPerGram = effective.DivRound(grams, 4)
	}

	return &models.ProductPricing{
		MRP:             models.NewMoneyFromDecimal(mrp),
		DiscountPercent: v.discount,
		EffectivePrice:  models.NewMoneyFromDecimal(effective),
		CostPerGram:     models.Money{Decimal: costPerGram},
	}
}
