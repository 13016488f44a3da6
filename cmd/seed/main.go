package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"blogiq/database"
	"blogiq/internal/config"
	"blogiq/internal/identity"
	"blogiq/internal/models"
	"blogiq/internal/repository"
)

func main() {
	adminCmd := flag.NewFlagSet("admin", flag.ExitOnError)
	adminID := adminCmd.String("clerk-id", "", "Identity provider user ID to promote to admin")

	syncCmd := flag.NewFlagSet("sync", flag.ExitOnError)
	syncPages := syncCmd.Int("pages", 10, "Maximum number of 100-user pages to copy")

	blogsCmd := flag.NewFlagSet("blogs", flag.ExitOnError)
	authorID := blogsCmd.String("author", "", "Identity provider user ID to author the posts")
	numBlogs := blogsCmd.Int("count", 10, "Number of sample posts to create")
	approved := blogsCmd.Bool("approved", true, "Create the posts already approved")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()

	switch os.Args[1] {
	case "admin":
		adminCmd.Parse(os.Args[2:])
		if *adminID == "" {
			log.Fatal("-clerk-id is required")
		}

		provider := mustIdentity(cfg)
		user, err := provider.GetUser(ctx, *adminID)
		if err != nil {
			log.Fatalf("Error loading user %s: %v", *adminID, err)
		}

		access := models.Access{Role: models.RoleAdmin, CreatorStatus: models.CreatorStatusNone}
		if err := provider.UpdateMetadata(ctx, *adminID, identity.Metadata{Role: string(access.Role), CreatorStatus: string(access.CreatorStatus)}); err != nil {
			log.Fatalf("Error updating metadata: %v", err)
		}

		users := repository.NewUserRepository(database.ConnectDatabase(cfg.Database))
		if err := users.Upsert(ctx, user.Mirror(access)); err != nil {
			log.Printf("Warning: provider updated but mirror write failed: %v", err)
		}
		log.Printf("%s (%s) is now an admin", user.DisplayName(*adminID), user.PrimaryEmail())

	case "sync":
		syncCmd.Parse(os.Args[2:])

		provider := mustIdentity(cfg)
		db := database.ConnectDatabase(cfg.Database)
		if err := database.MigrateDatabase(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		users := repository.NewUserRepository(db)

		const pageSize = 100
		synced := 0
		for page := 0; page < *syncPages; page++ {
			batch, err := provider.ListUsers(ctx, identity.ListUsersParams{Limit: pageSize, Offset: page * pageSize})
			if err != nil {
				log.Fatalf("Error listing users: %v", err)
			}
			for i := range batch {
				if err := users.Upsert(ctx, batch[i].Mirror(batch[i].Access())); err != nil {
					log.Printf("Failed to mirror %s: %v", batch[i].ID, err)
					continue
				}
				synced++
			}
			if len(batch) < pageSize {
				break
			}
		}
		log.Printf("Mirrored %d users", synced)

	case "blogs":
		blogsCmd.Parse(os.Args[2:])
		if *authorID == "" {
			log.Fatal("-author is required")
		}

		db := database.ConnectDatabase(cfg.Database)
		if err := database.MigrateDatabase(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		blogs := repository.NewBlogRepository(db)

		status := models.PostStatusPending
		if *approved {
			status = models.PostStatusApproved
		}

		categories := []string{"technology", "business", "science", "health", "sports", "entertainment"}
		stamp := time.Now().Unix()
		for i := 0; i < *numBlogs; i++ {
			category := categories[i%len(categories)]
			blog := &models.Blog{
				Title:      fmt.Sprintf("Sample %s post #%d", category, i+1),
				Slug:       fmt.Sprintf("sample-%s-%d-%d", category, stamp, i+1),
				Category:   category,
				Content:    fmt.Sprintf("<p>This is sample post number %d about %s.</p>", i+1, category),
				AuthorID:   *authorID,
				AuthorName: "Editorial Staff",
				Status:     status,
			}
			if err := blogs.Create(ctx, blog); err != nil {
				log.Fatalf("Error creating blog %d: %v", i+1, err)
			}
		}
		log.Printf("Created %d %s blogs", *numBlogs, status)

	case "help", "-h", "--help":
		printHelp()

	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func mustIdentity(cfg config.Config) *identity.Client {
	client, err := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.SecretKey)
	if err != nil {
		log.Fatalf("Failed to create identity client: %v", err)
	}
	return client
}

func printHelp() {
	fmt.Println("BlogIQ maintenance tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  seed admin -clerk-id <id>              Grant the admin role")
	fmt.Println("  seed sync [-pages 10]                   Copy provider roles into the local user mirror")
	fmt.Println("  seed blogs -author <id> [-count 10]     Create sample posts")
	fmt.Println("             [-approved=false]")
}
