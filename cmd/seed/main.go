package main

import (
	"flag"
	"log"

	"github.com/pixelcraft-pc/storefront/internal/authz"
	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedPC struct {
	category string
	input    service.ProductInput
	games    map[string]service.ProductGameInput
}

func main() {
	var withStaff bool
	flag.BoolVar(&withStaff, "staff", false, "同时创建 editor/support 演示账号")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.EnsurePaymentMethods(models.DB); err != nil {
		stdLog.Fatalf("Failed to seed payment methods: %v", err)
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap roles: %v", err)
	}

	db := models.DB
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	gameRepo := repository.NewGameRepository(db)
	setupFee, err := decimal.NewFromString(cfg.Store.SetupFee)
	if err != nil {
		setupFee = decimal.NewFromInt(150)
	}
	categories := service.NewCategoryService(categoryRepo, productRepo)
	games := service.NewGameService(gameRepo)
	products := service.NewProductAdminService(productRepo, categoryRepo, gameRepo, setupFee)

	categoryIDs := seedCategories(stdLog, categoryRepo, categories)
	gameIDs := seedGames(stdLog, gameRepo, games)
	seedPCs(stdLog, productRepo, products, categoryIDs, gameIDs)
	seedAdmins(stdLog, repository.NewAdminRepository(db), withStaff)

	stdLog.Printf("Seed finished")
}

func seedCategories(stdLog *log.Logger, repo repository.CategoryRepository, svc *service.CategoryService) map[string]uint {
	inputs := []service.CategoryInput{
		{Name: "Gamer Pro", Slug: "gamer-pro", Description: "Máquinas para jogar em 1440p e 4K", Color: "#ff2d95", Icon: "gamepad", SortOrder: 1},
		{Name: "Streamer", Slug: "streamer", Description: "Jogue e transmita ao mesmo tempo", Color: "#7b2dff", Icon: "broadcast", SortOrder: 2},
		{Name: "Entrada", Slug: "entrada", Description: "O primeiro PC gamer com estilo", Color: "#00e0ff", Icon: "rocket", SortOrder: 3},
	}
	ids := make(map[string]uint, len(inputs))
	for _, input := range inputs {
		existing, err := repo.GetBySlug(input.Slug)
		if err != nil {
			stdLog.Printf("Failed to load category %s: %v", input.Slug, err)
			continue
		}
		if existing != nil {
			stdLog.Printf("Category already exists: %s", input.Slug)
			ids[input.Slug] = existing.ID
			continue
		}
		created, err := svc.Create(input)
		if err != nil {
			stdLog.Printf("Failed to create category %s: %v", input.Slug, err)
			continue
		}
		stdLog.Printf("Created category: %s", created.Slug)
		ids[created.Slug] = created.ID
	}
	return ids
}

func seedGames(stdLog *log.Logger, repo repository.GameRepository, svc *service.GameService) map[string]uint {
	ids := map[string]uint{}
	existing, err := repo.List(false)
	if err != nil {
		stdLog.Printf("Failed to load games: %v", err)
	}
	for _, game := range existing {
		ids[game.Slug] = game.ID
	}
	inputs := []service.GameInput{
		{Name: "Cyberpunk 2077", Genre: "RPG"},
		{Name: "Valorant", Genre: "FPS"},
		{Name: "Fortnite", Genre: "Battle Royale"},
		{Name: "Counter-Strike 2", Genre: "FPS"},
	}
	for _, input := range inputs {
		slug := service.Slugify(input.Name)
		if _, ok := ids[slug]; ok {
			stdLog.Printf("Game already exists: %s", slug)
			continue
		}
		created, err := svc.Create(input)
		if err != nil {
			stdLog.Printf("Failed to create game %s: %v", input.Name, err)
			continue
		}
		stdLog.Printf("Created game: %s", created.Slug)
		ids[created.Slug] = created.ID
	}
	return ids
}

func seedPCs(stdLog *log.Logger, repo repository.ProductRepository, svc *service.ProductAdminService, categoryIDs, gameIDs map[string]uint) {
	priceOld := decimal.RequireFromString("12999.90")
	pcs := []seedPC{
		{
			category: "gamer-pro",
			input: service.ProductInput{
				Name:           "Dragon Neon RTX",
				Subtitle:       "Grafite neon assinado",
				Description:    "Ryzen 7 com RTX 4070 Super e pintura feita à mão.",
				Price:          decimal.RequireFromString("10999.90"),
				PriceOld:       &priceOld,
				Processor:      "AMD Ryzen 7 7800X3D",
				GPU:            "NVIDIA RTX 4070 Super 12GB",
				RAM:            "32GB DDR5 6000MHz",
				Storage:        "SSD NVMe 2TB",
				Motherboard:    "B650M",
				PSU:            "850W 80 Plus Gold",
				CaseModel:      "Lian Li O11 Mini",
				Cooling:        "Water cooler 360mm",
				GraffitiArtist: "Rafa Spray",
				GraffitiStyle:  "Neon wildstyle",
				ImageMain:      "/uploads/pcs/dragon-neon-rtx.webp",
				Featured:       true,
				Bestseller:     true,
			},
			games: map[string]service.ProductGameInput{
				"cyberpunk-2077":   {Performance: 88, FPSAvg: 95, Resolution: "1440p"},
				"valorant":         {Performance: 99, FPSAvg: 420, Resolution: "1080p"},
				"counter-strike-2": {Performance: 97, FPSAvg: 380, Resolution: "1080p"},
			},
		},
		{
			category: "streamer",
			input: service.ProductInput{
				Name:          "Aurora Stream",
				Subtitle:      "Pronto para live",
				Description:   "Intel Core i7 com encoder dedicado para transmissão.",
				Price:         decimal.RequireFromString("8499.00"),
				Processor:     "Intel Core i7-14700F",
				GPU:           "NVIDIA RTX 4060 Ti 8GB",
				RAM:           "32GB DDR5 5600MHz",
				Storage:       "SSD NVMe 1TB",
				Motherboard:   "B760M",
				PSU:           "750W 80 Plus Bronze",
				CaseModel:     "Aquário branco",
				Cooling:       "Air cooler dual tower",
				GraffitiStyle: "Aurora pastel",
				ImageMain:     "/uploads/pcs/aurora-stream.webp",
				Featured:      true,
			},
			games: map[string]service.ProductGameInput{
				"fortnite": {Performance: 90, FPSAvg: 165, Resolution: "1080p"},
				"valorant": {Performance: 95, FPSAvg: 300, Resolution: "1080p"},
			},
		},
		{
			category: "entrada",
			input: service.ProductInput{
				Name:          "Pixel Starter",
				Subtitle:      "Primeiro passo no mundo gamer",
				Description:   "Ryzen 5 com RX 7600 para jogar em Full HD.",
				Price:         decimal.RequireFromString("4299.90"),
				Processor:     "AMD Ryzen 5 5600",
				GPU:           "AMD Radeon RX 7600 8GB",
				RAM:           "16GB DDR4 3200MHz",
				Storage:       "SSD NVMe 512GB",
				Motherboard:   "A520M",
				PSU:           "550W 80 Plus Bronze",
				CaseModel:     "Mid tower vidro",
				Cooling:       "Box cooler",
				GraffitiStyle: "Pixel art",
				ImageMain:     "/uploads/pcs/pixel-starter.webp",
			},
			games: map[string]service.ProductGameInput{
				"fortnite":         {Performance: 72, FPSAvg: 110, Resolution: "1080p"},
				"counter-strike-2": {Performance: 80, FPSAvg: 220, Resolution: "1080p"},
			},
		},
	}

	for _, pc := range pcs {
		slug := service.Slugify(pc.input.Name)
		existing, err := repo.GetBySlug(slug, false)
		if err != nil {
			stdLog.Printf("Failed to load pc %s: %v", slug, err)
			continue
		}
		if existing != nil {
			stdLog.Printf("PC already exists: %s", slug)
			continue
		}
		input := pc.input
		if id, ok := categoryIDs[pc.category]; ok {
			input.CategoryID = &id
		}
		created, err := svc.Create(input)
		if err != nil {
			stdLog.Printf("Failed to create pc %s: %v", input.Name, err)
			continue
		}
		stdLog.Printf("Created pc: %s", created.Slug)
		for gameSlug, perf := range pc.games {
			gameID, ok := gameIDs[gameSlug]
			if !ok {
				continue
			}
			perf.GameID = gameID
			if _, err := svc.SetGame(created.ID, perf); err != nil {
				stdLog.Printf("Failed to link game %s to %s: %v", gameSlug, created.Slug, err)
			}
		}
	}
}

func seedAdmins(stdLog *log.Logger, repo repository.AdminRepository, withStaff bool) {
	if err := models.InitDefaultAdmin(models.DB, "", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}
	if !withStaff {
		return
	}
	staff := []models.Admin{
		{Username: "editor", Email: "editor@pixelcraft.test", Role: constants.AdminRoleEditor, Active: true},
		{Username: "suporte", Email: "suporte@pixelcraft.test", Role: constants.AdminRoleSupport, Active: true},
	}
	for i := range staff {
		admin := staff[i]
		existing, err := repo.GetByUsername(admin.Username)
		if err != nil {
			stdLog.Printf("Failed to load admin %s: %v", admin.Username, err)
			continue
		}
		if existing != nil {
			stdLog.Printf("Admin already exists: %s", admin.Username)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(admin.Username+"123"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", admin.Username, err)
			continue
		}
		admin.PasswordHash = string(hash)
		if err := repo.Create(&admin); err != nil {
			stdLog.Printf("Failed to create admin %s: %v", admin.Username, err)
			continue
		}
		stdLog.Printf("Created admin: %s (%s)", admin.Username, admin.Role)
	}
}
