package main

import (
	"errors"
	"flag"
	"log"

	"gorm.io/gorm"

	"github.com/BelleVueSalon/salon-booking-api/internal/config"
	dbpkg "github.com/BelleVueSalon/salon-booking-api/internal/db"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

func ratingPtr(v float64) *float64 { return &v }

var defaultStyles = []models.Style{
	{
		Name: "Box Braids", Category: "braids",
		PriceMin: 140, PriceMax: 220, DurationMins: 240,
		ImageURL:  "https://cdn2.stylecraze.com/wp-content/uploads/2024/03/Woman-with-long-box-braids-hairstyle.jpg.avif",
		RatingAvg: ratingPtr(4.8),
	},
	{
		Name: "Taper Fade", Category: "cut",
		PriceMin: 35, PriceMax: 55, DurationMins: 45,
		ImageURL:  "https://menshaircuts.com/wp-content/uploads/2023/04/taper-fade-haircut-classy-mid.jpg",
		RatingAvg: ratingPtr(4.6),
	},
	{
		Name: "Twist Out", Category: "styling",
		PriceMin: 50, PriceMax: 80, DurationMins: 60,
		ImageURL:  "https://i0.wp.com/therighthairstyles.com/wp-content/uploads/2015/01/1-twist-out-bob-on-shoulder-length-natural-hair.jpg?resize=1080%2C1080&ssl=1",
		RatingAvg: ratingPtr(4.7),
	},
	{
		Name: "Balayage Color", Category: "color",
		PriceMin: 120, PriceMax: 250, DurationMins: 150,
		ImageURL:  "https://www.southernliving.com/thmb/bhizQMEOnEnn8FB4NRHwv0KV4io=/750x0/filters:no_upscale():max_bytes(150000):strip_icc():format(webp)/23-cbceff443dc14563ab255356a676a225.jpg",
		RatingAvg: ratingPtr(4.5),
	},
	{
		Name: "Silk Curls", Category: "styling",
		PriceMin: 60, PriceMax: 90, DurationMins: 75,
		ImageURL:  "https://www.fabmood.com/wp-content/uploads/2025/02/7528741.jpg",
		RatingAvg: ratingPtr(4.4),
	},
	{
		Name: "Classic Bob", Category: "cut",
		PriceMin: 50, PriceMax: 70, DurationMins: 60,
		ImageURL:  "https://theoryhairsalon.com/wp-content/uploads/2024/09/image-3-1.jpg?w=842",
		RatingAvg: ratingPtr(4.6),
	},
	{
		Name: "Beard Trim & Line Up", Category: "cut",
		PriceMin: 14.63, PriceMax: 14.63, DurationMins: 30,
		ImageURL:  "https://nashfades.ca/cdn/shop/products/image_1000x.jpg?v=1592796785",
		RatingAvg: ratingPtr(4.8),
	},
	{
		Name: "Buzz Cut", Category: "cut",
		PriceMin: 25, PriceMax: 35, DurationMins: 40,
		ImageURL:  "https://www.moderngentlemanmagazine.com/wp-content/uploads/2024/06/Classic-Buzz-Cut-Hairstyle-1024x1280.jpg",
		RatingAvg: ratingPtr(4.9),
	},
	{
		Name: "Feed-In Cornrows (6 Rows)", Category: "braids",
		PriceMin: 80, PriceMax: 120, DurationMins: 120,
		ImageURL:  "https://therighthairstyles.com/wp-content/gallery/35926/1/29-alt-Stitch-Braids-and-Tiny-Cornrows-name-justbraidsinfo.jpg",
		RatingAvg: ratingPtr(4.7),
	},
}

func main() {
	fresh := flag.Bool("fresh", false, "delete existing styles before seeding")
	flag.Parse()

	cfg := config.Load()

	database, err := dbpkg.Connect(cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if *fresh {
		res := database.Where("1 = 1").Delete(&models.Style{})
		if res.Error != nil {
			log.Fatalf("failed to delete styles: %v", res.Error)
		}
		log.Printf("Deleted %d existing style rows.", res.RowsAffected)
	}

	created, updated := 0, 0
	for _, style := range defaultStyles {
		// Name is the natural key, so re-running the seed is idempotent.
		var existing models.Style
		err := database.Where("name = ?", style.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := database.Create(&style).Error; err != nil {
				log.Fatalf("failed to create style %q: %v", style.Name, err)
			}
			created++
		case err != nil:
			log.Fatalf("failed to look up style %q: %v", style.Name, err)
		default:
			existing.Category = style.Category
			existing.PriceMin = style.PriceMin
			existing.PriceMax = style.PriceMax
			existing.DurationMins = style.DurationMins
			existing.ImageURL = style.ImageURL
			existing.RatingAvg = style.RatingAvg
			if err := database.Save(&existing).Error; err != nil {
				log.Fatalf("failed to update style %q: %v", style.Name, err)
			}
			updated++
		}
	}

	log.Printf("Seeding complete. Created: %d, Updated: %d.", created, updated)
}
