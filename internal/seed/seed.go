package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
)

// Fixed reference catalog inserted in this exact order.
var categorySeeds = []entities.NewServiceCategory{
	{Name: "Plumbing", Description: "Pipe repairs, installations and drain cleaning", Icon: "wrench", Color: "#2563EB"},
	{Name: "Electrical", Description: "Wiring, lighting and electrical repairs", Icon: "zap", Color: "#F59E0B"},
	{Name: "Carpentry", Description: "Custom woodwork, framing and furniture repair", Icon: "hammer", Color: "#92400E"},
	{Name: "Painting", Description: "Interior and exterior painting", Icon: "paintbrush", Color: "#DC2626"},
	{Name: "Cleaning", Description: "Home and office cleaning services", Icon: "sparkles", Color: "#10B981"},
	{Name: "Landscaping", Description: "Lawn care, gardening and outdoor design", Icon: "trees", Color: "#16A34A"},
	{Name: "Appliance Repair", Description: "Repair of household appliances", Icon: "plug", Color: "#6B7280"},
	{Name: "Moving", Description: "Packing, moving and hauling services", Icon: "truck", Color: "#7C3AED"},
}

type providerSeed struct {
	user         entities.NewUser
	categoryName string
	specialty    string
	businessName string
	location     string
	description  string
	hourlyRate   entities.Decimal
	yearsExp     int
	rating       entities.Decimal
	reviewCount  int
}

var providerSeeds = []providerSeed{
	{
		user: entities.NewUser{
			Email:     "mike.johnson@localfixconnect.com",
			FirstName: "Mike",
			LastName:  "Johnson",
			Phone:     "555-0101",
		},
		categoryName: "Electrical",
		specialty:    "Electrician",
		businessName: "Johnson Electrical Services",
		location:     "Springfield",
		description:  "Licensed electrician with a focus on residential wiring and panel upgrades",
		hourlyRate:   "85.00",
		yearsExp:     12,
		rating:       "4.8",
		reviewCount:  127,
	},
	{
		user: entities.NewUser{
			Email:     "sarah.williams@localfixconnect.com",
			FirstName: "Sarah",
			LastName:  "Williams",
			Phone:     "555-0102",
		},
		categoryName: "Plumbing",
		specialty:    "Plumber",
		businessName: "Williams Plumbing Co",
		location:     "Riverside",
		description:  "Emergency plumbing, leak detection and bathroom renovations",
		hourlyRate:   "75.00",
		yearsExp:     8,
		rating:       "4.9",
		reviewCount:  89,
	},
	{
		user: entities.NewUser{
			Email:     "david.chen@localfixconnect.com",
			FirstName: "David",
			LastName:  "Chen",
			Phone:     "555-0103",
		},
		categoryName: "Carpentry",
		specialty:    "Carpenter",
		businessName: "Chen Custom Carpentry",
		location:     "Oakdale",
		description:  "Custom cabinetry, decks and home renovation carpentry",
		hourlyRate:   "70.00",
		yearsExp:     15,
		rating:       "4.7",
		reviewCount:  64,
	},
}

// Run populates the baseline reference data through the storage port:
// the eight service categories, the administrator account and three
// approved sample providers. It assumes an empty store and always
// inserts; use Ensure when the store may already be seeded.
func Run(ctx context.Context, storage repositories.Storage) error {
	categoryIDs := make(map[string]string, len(categorySeeds))
	for _, in := range categorySeeds {
		category, err := storage.CreateServiceCategory(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", in.Name, err)
		}
		categoryIDs[category.Name] = category.ID
	}

	adminPassword, err := hashPassword("admin123")
	if err != nil {
		return err
	}
	if _, err := storage.CreateUser(ctx, entities.NewUser{
		Email:     "admin@localfixconnect.com",
		Password:  adminPassword,
		FirstName: "Admin",
		LastName:  "User",
		Role:      entities.UserRoleAdmin,
		Phone:     "555-0100",
	}); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	for _, ps := range providerSeeds {
		categoryID, ok := categoryIDs[ps.categoryName]
		if !ok {
			return fmt.Errorf("seed category %s missing from catalog", ps.categoryName)
		}

		password, err := hashPassword("provider123")
		if err != nil {
			return err
		}
		in := ps.user
		in.Password = password
		in.Role = entities.UserRoleProvider
		user, err := storage.CreateUser(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to seed provider user %s: %w", in.Email, err)
		}

		yearsExp := ps.yearsExp
		hourlyRate := ps.hourlyRate
		provider, err := storage.CreateProvider(ctx, entities.NewProvider{
			UserID:          user.ID,
			Specialty:       ps.specialty,
			BusinessName:    ps.businessName,
			Location:        ps.location,
			Description:     ps.description,
			HourlyRate:      &hourlyRate,
			IsApproved:      true,
			Categories:      []string{categoryID},
			YearsExperience: &yearsExp,
		})
		if err != nil {
			return fmt.Errorf("failed to seed provider %s: %w", ps.businessName, err)
		}

		if _, err := storage.CreateProviderCategory(ctx, entities.NewProviderCategory{
			ProviderID: provider.ID,
			CategoryID: categoryID,
		}); err != nil {
			return fmt.Errorf("failed to link provider %s to category: %w", ps.businessName, err)
		}

		// Rating and review count are not part of the provider creation
		// contract; sample values go in through a follow-up update.
		rating := ps.rating
		reviewCount := ps.reviewCount
		if _, err := storage.UpdateProvider(ctx, provider.ID, entities.ProviderUpdate{
			Rating:      &rating,
			ReviewCount: &reviewCount,
		}); err != nil {
			return fmt.Errorf("failed to apply sample rating for %s: %w", ps.businessName, err)
		}
	}

	log.Info().
		Int("categories", len(categorySeeds)).
		Int("providers", len(providerSeeds)).
		Msg("seeded baseline marketplace data")

	return nil
}

// Ensure seeds only when no service categories exist yet, making
// repeated startups against a persistent store safe.
func Ensure(ctx context.Context, storage repositories.Storage) error {
	existing, err := storage.ListServiceCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing reference data: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("categories", len(existing)).Msg("reference data present, seed skipped")
		return nil
	}
	return Run(ctx, storage)
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash seed password: %w", err)
	}
	return string(hash), nil
}
