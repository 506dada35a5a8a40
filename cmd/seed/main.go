package main

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/service"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo12345"
)

type seedRecipe struct {
	title       string
	timeMinute  int
	price       string
	desc        string
	link        string
	tags        []string
	ingredients []string
}

var seedRecipes = []seedRecipe{
	{
		title:       "Shakshuka",
		timeMinute:  30,
		price:       "6.50",
		desc:        "Eggs poached in spiced tomato sauce.",
		link:        "https://example.com/shakshuka",
		tags:        []string{"Breakfast", "Vegetarian"},
		ingredients: []string{"Egg", "Tomato", "Paprika"},
	},
	{
		title:       "Lentil Soup",
		timeMinute:  45,
		price:       "4.25",
		desc:        "Slow-simmered red lentils with cumin.",
		tags:        []string{"Dinner", "Vegetarian"},
		ingredients: []string{"Lentils", "Onion", "Cumin"},
	},
	{
		title:       "Beef Tacos",
		timeMinute:  25,
		price:       "9.99",
		tags:        []string{"Dinner"},
		ingredients: []string{"Beef", "Tortilla", "Onion"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	recipeService := service.NewRecipeService(repository.NewRecipeRepository(gormDB))

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("look up demo user: %v", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user = &model.User{
			Email:        demoEmail,
			Name:         "Demo User",
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create demo user: %v", err)
		}
		log.Printf("Created demo user %s (password %q)", demoEmail, demoPassword)
	} else {
		log.Printf("Demo user %s already exists", demoEmail)
	}

	count := 0
	for _, sr := range seedRecipes {
		price, err := decimal.NewFromString(sr.price)
		if err != nil {
			log.Fatalf("parse price for %q: %v", sr.title, err)
		}
		title := sr.title
		timeMinute := sr.timeMinute
		tags := sr.tags
		ingredients := sr.ingredients
		if _, err := recipeService.Create(ctx, user.ID, service.CreateRecipeInput{
			Title:       &title,
			TimeMinute:  &timeMinute,
			Price:       &price,
			Desc:        sr.desc,
			Link:        sr.link,
			Tags:        &tags,
			Ingredients: &ingredients,
		}); err != nil {
			log.Fatalf("seed recipe %q: %v", sr.title, err)
		}
		count++
	}

	log.Printf("Seeded %d recipes for %s", count, demoEmail)
}
