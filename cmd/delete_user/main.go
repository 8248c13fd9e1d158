// Command delete_user removes an account together with its questions,
// answers and votes.
//
//	delete_user --login alice
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/config"
	"github.com/Jam721/VkWebHomework/internal/database"
	"github.com/Jam721/VkWebHomework/internal/user"
)

func main() {
	login := flag.String("login", "", "username or email of the user to delete")
	flag.Parse()
	if *login == "" {
		log.Fatalf("--login is required")
	}

	config.MustLoad("config.yaml")
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	repo := user.NewUserRepository(database.GetDB())

	u, err := repo.FindByLogin(ctx, *login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("no user %q", *login)
	}
	if err != nil {
		log.Fatalf("find user: %v", err)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		log.Fatalf("delete user: %v", err)
	}
	fmt.Printf("Deleted user %s (id %d)\n", u.Username, u.ID)
}
