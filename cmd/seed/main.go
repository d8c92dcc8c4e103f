package main

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/service"
)

// Demo data for local development: one user, a handful of public recipes
// and a favorite mark.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         "Demo Cook",
		Email:        "demo@platewise.dev",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		AIContext:    "prefers quick vegetarian meals",
	}
	if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	recipes := []models.Recipe{
		{
			Title:        "Weeknight Tomato Pasta",
			Description:  "A ten-minute pantry pasta.",
			Ingredients:  "- 200g spaghetti\n- 1 can chopped tomatoes\n- 2 cloves garlic\n- Olive oil\n- Basil",
			Instructions: "1. Boil the pasta\n2. Fry garlic in oil, add tomatoes\n3. Simmer, toss with pasta, top with basil",
			IsPublic:     true,
		},
		{
			Title:        "Chickpea Curry",
			Description:  "Mild coconut chickpea curry.",
			Ingredients:  "- 1 can chickpeas\n- 1 can coconut milk\n- 1 onion\n- Curry paste\n- Rice to serve",
			Instructions: "1. Fry the onion\n2. Add paste, chickpeas and coconut milk\n3. Simmer 15 minutes, serve over rice",
			IsPublic:     true,
		},
		{
			Title:        "Overnight Oats",
			Description:  "No-cook breakfast.",
			Ingredients:  "- 50g oats\n- 150ml milk\n- 1 tbsp chia seeds\n- Berries",
			Instructions: "1. Mix everything in a jar\n2. Refrigerate overnight\n3. Top with berries",
			IsPublic:     false,
		},
	}

	for i := range recipes {
		recipes[i].CreatedByID = user.ID
		recipes[i].Embedding = service.GenerateEmbedding(recipes[i].Title + " " + recipes[i].Description)
		if err := db.Where("title = ? AND created_by_id = ?", recipes[i].Title, user.ID).
			FirstOrCreate(&recipes[i]).Error; err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipes[i].Title, err)
		}
	}

	fav := models.FavoriteRecipe{UserID: user.ID, RecipeID: recipes[0].ID}
	if err := db.Where("user_id = ? AND recipe_id = ?", fav.UserID, fav.RecipeID).
		FirstOrCreate(&fav).Error; err != nil {
		log.Fatalf("Failed to seed favorite: %v", err)
	}

	log.Printf("Seeded user %s with %d recipes", user.Email, len(recipes))
}
