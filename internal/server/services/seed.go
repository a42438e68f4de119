package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/dbx"
	"github.com/dmitrijs2005/hoverboard/internal/server/auth"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/dmitrijs2005/hoverboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	DemoEmail    = "demo@hoverboard.com"
	DemoPassword = "demo123"
	DemoUsername = "demo_user"
)

// SeedService installs the demo account and its sample portfolio.
type SeedService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	now         func() time.Time
}

func NewSeedService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher) *SeedService {
	return &SeedService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// EnsureSampleData creates the demo user if missing and gives it the sample
// projects if it owns none. Running it again changes nothing.
func (s *SeedService) EnsureSampleData(ctx context.Context) error {
	return s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)
		projects := s.repomanager.Projects(tx)

		demo, err := users.GetByEmail(ctx, DemoEmail)
		if errors.Is(err, common.ErrorNotFound) {
			demo, err = s.createDemoUser(ctx, tx)
		}
		if err != nil {
			return fmt.Errorf("error ensuring demo user: %w", err)
		}

		count, err := projects.CountByUser(ctx, demo.ID)
		if err != nil {
			return fmt.Errorf("error counting demo projects: %w", err)
		}
		if count > 0 {
			return nil
		}

		now := s.now()
		for i, in := range sampleProjects() {
			// distinct timestamps keep the newest-first order stable
			p := models.NewProject(uuid.NewString(), demo.ID, in, now.Add(time.Duration(i)*time.Millisecond))
			if _, err := projects.Create(ctx, p); err != nil {
				return fmt.Errorf("error creating sample project: %w", err)
			}
		}
		return nil
	})
}

func (s *SeedService) createDemoUser(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
	hash, err := s.hasher.Hash(DemoPassword)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return s.repomanager.Users(tx).Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        DemoEmail,
		Username:     DemoUsername,
		PasswordHash: hash,
		FullName:     "Demo User",
		Bio:          "This is a demo user account for HoverBoard showcase",
		AvatarURL:    models.DefaultAvatarURL,
		Saldo:        2500000,
		Level:        models.LevelPremium,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     true,
	})
}

func ptr(s string) *string {
	return &s
}

func sampleProjects() []models.ProjectCreate {
	return []models.ProjectCreate{
		{
			Title:               "Website Portfolio",
			Subtitle:            "React & Node.js",
			Description:         "Portfolio modern dengan animasi interaktif yang menawan",
			DetailedDescription: "Sebuah website portfolio yang dirancang khusus untuk menampilkan karya-karya terbaik dengan pengalaman pengguna yang luar biasa. Website ini menggunakan teknologi terdepan seperti React untuk frontend yang responsif, Node.js untuk backend yang powerful, dan MongoDB untuk database yang scalable.",
			Category:            "web",
			ImageURL:            "https://images.unsplash.com/photo-1467232004584-a241de8bcf5d?w=400&h=300&fit=crop",
			GalleryImages: []string{
				"https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=600&h=400&fit=crop",
				"https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=600&h=400&fit=crop",
			},
			HoverContent: "Dibuat dengan React, Node.js, dan MongoDB. Dilengkapi dengan mode gelap/terang, desain responsif, dan animasi yang halus.",
			FunFact:      "Proyek ini selesai dalam 3 hari dan menggunakan lebih dari 15 library animasi yang berbeda!",
			TechStack:    []string{"React", "Node.js", "MongoDB", "Tailwind CSS"},
			Features:     []string{"Mode gelap dan terang", "Animasi interaktif", "Desain responsif"},
			Challenges:   []string{"Optimasi performa animasi", "Kompatibilitas lintas browser"},
			Solutions:    []string{"Implementasi lazy loading", "Testing ekstensif"},
			GithubURL:    ptr("https://github.com/demo/portfolio"),
			DemoURL:      ptr("https://portfolio-demo.com"),
			Duration:     "3 hari",
			TeamSize:     1,
			Status:       "selesai",
		},
		{
			Title:               "Aplikasi E-commerce",
			Subtitle:            "Solusi Full-stack",
			Description:         "Pengalaman belanja modern dengan integrasi pembayaran yang lengkap",
			DetailedDescription: "Platform e-commerce yang komprehensif dengan sistem pembayaran terintegrasi, manajemen inventori real-time, dan dashboard admin yang powerful.",
			Category:            "app",
			ImageURL:            "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=400&h=300&fit=crop",
			GalleryImages: []string{
				"https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=600&h=400&fit=crop",
			},
			HoverContent: "Solusi e-commerce lengkap dengan integrasi Stripe, inventori real-time, dan dashboard admin yang powerful.",
			FunFact:      "Memproses lebih dari 1000 pesanan per bulan!",
			TechStack:    []string{"Next.js", "PostgreSQL", "Stripe", "Redis"},
			Features:     []string{"Sistem pembayaran multi-gateway", "Manajemen inventori real-time"},
			Challenges:   []string{"Integrasi payment gateway yang kompleks"},
			Solutions:    []string{"Implementasi microservices architecture"},
			GithubURL:    ptr("https://github.com/demo/ecommerce"),
			DemoURL:      ptr("https://toko-online-demo.com"),
			Duration:     "2 bulan",
			TeamSize:     3,
			Status:       "aktif",
		},
	}
}
