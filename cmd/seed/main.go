package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/ordering"
	"github.com/orderdesk/backend/internal/infrastructure/config"
	"github.com/orderdesk/backend/internal/infrastructure/logger"
	"github.com/orderdesk/backend/internal/infrastructure/persistence"
)

type catalogEntry struct {
	name     string
	category string
	price    string
}

var categories = []string{"Electronics", "Stationery", "Furniture", "Appliances", "Sports"}

var catalog = []catalogEntry{
	{"Laptop Pro", "Electronics", "3499.00"},
	{"Wireless Mouse", "Electronics", "89.90"},
	{"Mechanical Keyboard", "Electronics", "259.00"},
	{"USB-C Hub", "Electronics", "129.00"},
	{"Bluetooth Speaker", "Electronics", "199.00"},
	{"Notebook A5", "Stationery", "8.50"},
	{"Gel Pen Set", "Stationery", "15.90"},
	{"Desk Organizer", "Stationery", "45.00"},
	{"Sticky Notes Pack", "Stationery", "6.90"},
	{"Office Chair", "Furniture", "799.00"},
	{"Standing Desk", "Furniture", "1650.00"},
	{"Bookshelf", "Furniture", "420.00"},
	{"Filing Cabinet", "Furniture", "380.00"},
	{"Rice Cooker", "Appliances", "289.00"},
	{"Electric Kettle", "Appliances", "119.00"},
	{"Air Purifier", "Appliances", "599.00"},
	{"Running Shoes", "Sports", "329.00"},
	{"Yoga Mat", "Sports", "79.00"},
	{"Badminton Racket", "Sports", "189.00"},
	{"Water Bottle", "Sports", "35.00"},
}

type customerEntry struct {
	name  string
	email string
	state string
}

// a few customers deliberately have no state recorded
var customerList = []customerEntry{
	{"Aina Binti Rahman", "aina.rahman@example.com", "Selangor"},
	{"Benjamin Tan", "ben.tan@example.com", "Penang"},
	{"Chong Wei Ling", "wl.chong@example.com", "Johor"},
	{"Dinesh Kumar", "dinesh.k@example.com", "Kuala Lumpur"},
	{"Emily Wong", "emily.wong@example.com", ""},
	{"Farid Bin Ismail", "farid.ismail@example.com", "Sabah"},
	{"Grace Lim", "grace.lim@example.com", "Sarawak"},
	{"Hafiz Bin Omar", "hafiz.omar@example.com", ""},
	{"Izzah Binti Yusof", "izzah.yusof@example.com", "Kedah"},
	{"Jason Lee", "jason.lee@example.com", "Melaka"},
	{"Kavitha Pillai", "kavitha.p@example.com", "Perak"},
	{"Liyana Binti Hassan", "liyana.hassan@example.com", "Terengganu"},
	{"Marcus Ng", "marcus.ng@example.com", ""},
	{"Nurul Binti Aziz", "nurul.aziz@example.com", "Kelantan"},
	{"Ooi Siew Mei", "sm.ooi@example.com", "Negeri Sembilan"},
}

func main() {
	var (
		orderCount int
		rangeDays  int
		seed       int64
	)
	flag.IntVar(&orderCount, "orders", 50, "Number of orders to create")
	flag.IntVar(&rangeDays, "days", 90, "Spread orders over the trailing n days")
	flag.Int64Var(&seed, "seed", 42, "Random seed for reproducible data")
	flag.Parse()

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.DB.AutoMigrate(
		&ordering.Category{},
		&ordering.Product{},
		&ordering.Customer{},
		&ordering.Order{},
		&ordering.OrderItem{},
	); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(seed))
	ctx := context.Background()

	categoryIDs := make(map[string]uuid.UUID, len(categories))
	for _, name := range categories {
		category, err := ordering.NewCategory(name)
		if err != nil {
			log.Fatal("Invalid category", zap.String("name", name), zap.Error(err))
		}
		if err := db.DB.WithContext(ctx).Create(category).Error; err != nil {
			log.Fatal("Failed to create category", zap.String("name", name), zap.Error(err))
		}
		categoryIDs[name] = category.ID
	}

	products := make([]*ordering.Product, 0, len(catalog))
	for _, entry := range catalog {
		categoryID := categoryIDs[entry.category]
		product, err := ordering.NewProduct(entry.name, decimal.RequireFromString(entry.price), &categoryID)
		if err != nil {
			log.Fatal("Invalid product", zap.String("name", entry.name), zap.Error(err))
		}
		if err := db.DB.WithContext(ctx).Create(product).Error; err != nil {
			log.Fatal("Failed to create product", zap.String("name", entry.name), zap.Error(err))
		}
		products = append(products, product)
	}

	customers := make([]*ordering.Customer, 0, len(customerList))
	for _, entry := range customerList {
		customer, err := ordering.NewCustomer(entry.name, entry.email, entry.state)
		if err != nil {
			log.Fatal("Invalid customer", zap.String("name", entry.name), zap.Error(err))
		}
		if err := db.DB.WithContext(ctx).Create(customer).Error; err != nil {
			log.Fatal("Failed to create customer", zap.String("name", entry.name), zap.Error(err))
		}
		customers = append(customers, customer)
	}

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	today := time.Now().Truncate(24 * time.Hour)

	for i := 0; i < orderCount; i++ {
		customer := customers[rng.Intn(len(customers))]
		orderDate := today.AddDate(0, 0, -rng.Intn(rangeDays))

		order, err := ordering.NewOrder(fmt.Sprintf("ORD-%05d", 1001+i), customer.ID, orderDate)
		if err != nil {
			log.Fatal("Failed to build order", zap.Error(err))
		}

		itemCount := 2 + rng.Intn(4)
		for j := 0; j < itemCount; j++ {
			product := products[rng.Intn(len(products))]
			quantity := 1 + rng.Intn(5)
			if err := order.AddItem(product.ID, quantity, product.Price); err != nil {
				log.Fatal("Failed to add order item", zap.Error(err))
			}
		}

		if err := orderRepo.Save(ctx, order); err != nil {
			log.Fatal("Failed to save order", zap.String("order_no", order.OrderNo), zap.Error(err))
		}
	}

	log.Info("Seed completed",
		zap.Int("categories", len(categories)),
		zap.Int("products", len(products)),
		zap.Int("customers", len(customers)),
		zap.Int("orders", orderCount),
	)
}
