package types

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type UpdateProfileRequest struct {
	Name      string  `json:"name" binding:"required"`
	ImageURL  *string `json:"image_url"`
	AIContext *string `json:"ai_context"`
}

type CreateMealPlanEntryRequest struct {
	Date     string `json:"date" binding:"required"`
	MealType string `json:"meal_type" binding:"required"`
	RecipeID *uint  `json:"recipe_id"`
}

type UpdateMealPlanEntryRequest struct {
	RecipeID *uint `json:"recipe_id"`
}

type GenerateRecipeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type GenerateMealPlanRequest struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Preferences string `json:"preferences"`
}
