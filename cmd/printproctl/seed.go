package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/db"
	"github.com/printpro/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// seedFile 是 `printproctl seed` 读取的 YAML 结构。
type seedFile struct {
	Services []seedItem    `yaml:"services"`
	Gallery  []seedItem    `yaml:"gallery"`
	Settings *seedSettings `yaml:"settings"`
}

type seedItem struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl"`
	Order       int    `yaml:"order"`
}

type seedSettings struct {
	BusinessName string `yaml:"businessName"`
	Phone        string `yaml:"phone"`
	Email        string `yaml:"email"`
	Address      string `yaml:"address"`
}

type seedReport struct {
	ServicesCreated int
	ServicesSkipped int
	GalleryCreated  int
	GallerySkipped  int
	SettingsUpdated bool
}

func newSeedCmd(flags *globalFlags) *cobra.Command {
	var file, as string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load services, gallery images and business details from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(file) == "" {
				return errors.New("--file is required")
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			data, err := parseSeed(f)
			if err != nil {
				return err
			}

			gdb, _, err := openDB(flags)
			if err != nil {
				return err
			}
			defer closeDB(gdb)

			actor, err := lookupIdentity(cmd.Context(), gdb, as)
			if err != nil {
				return err
			}

			report, err := applySeed(cmd.Context(), gdb, actor, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "services: %d created, %d skipped\n", report.ServicesCreated, report.ServicesSkipped)
			fmt.Fprintf(cmd.OutOrStdout(), "gallery: %d created, %d skipped\n", report.GalleryCreated, report.GallerySkipped)
			if report.SettingsUpdated {
				fmt.Fprintln(cmd.OutOrStdout(), "business details updated")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the seed YAML file")
	cmd.Flags().StringVar(&as, "as", "", "admin username to act as, defaults to the first admin account")
	return cmd
}

func parseSeed(r io.Reader) (seedFile, error) {
	var data seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return data, nil
		}
		return data, fmt.Errorf("parse seed file: %w", err)
	}
	return data, nil
}

// lookupIdentity 找到种子数据的操作人，写操作仍然经过管理员鉴权。
func lookupIdentity(ctx context.Context, gdb *gorm.DB, username string) (*auth.Identity, error) {
	var user db.User
	query := gdb.WithContext(ctx).Order("id ASC")
	if name := strings.TrimSpace(username); name != "" {
		query = query.Where("username = ?", name)
	}
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("no admin user found, run `printproctl user ensure` first")
		}
		return nil, fmt.Errorf("load admin user: %w", err)
	}
	return &auth.Identity{UserID: user.ID, Username: user.Username}, nil
}

// applySeed 写入种子数据；标题已存在的服务或作品会被跳过，因此可重复执行。
func applySeed(ctx context.Context, gdb *gorm.DB, actor *auth.Identity, data seedFile) (seedReport, error) {
	var report seedReport

	catalog := service.NewCatalogService(gdb)
	existingServices, err := catalog.List(ctx)
	if err != nil {
		return report, err
	}
	serviceTitles := make(map[string]struct{}, len(existingServices))
	for _, item := range existingServices {
		serviceTitles[strings.ToLower(item.Title)] = struct{}{}
	}
	for _, item := range data.Services {
		key := strings.ToLower(strings.TrimSpace(item.Title))
		if _, exists := serviceTitles[key]; exists {
			report.ServicesSkipped++
			continue
		}
		if _, err := catalog.Create(ctx, actor, service.ServiceInput{
			Title:       item.Title,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			Order:       item.Order,
		}); err != nil {
			return report, fmt.Errorf("seed service %q: %w", item.Title, err)
		}
		serviceTitles[key] = struct{}{}
		report.ServicesCreated++
	}

	gallery := service.NewGalleryService(gdb)
	existingImages, err := gallery.List(ctx)
	if err != nil {
		return report, err
	}
	imageTitles := make(map[string]struct{}, len(existingImages))
	for _, item := range existingImages {
		imageTitles[strings.ToLower(item.Title)] = struct{}{}
	}
	for _, item := range data.Gallery {
		key := strings.ToLower(strings.TrimSpace(item.Title))
		if _, exists := imageTitles[key]; exists {
			report.GallerySkipped++
			continue
		}
		if _, err := gallery.Create(ctx, actor, service.GalleryInput{
			Title:       item.Title,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			Order:       item.Order,
		}); err != nil {
			return report, fmt.Errorf("seed gallery image %q: %w", item.Title, err)
		}
		imageTitles[key] = struct{}{}
		report.GalleryCreated++
	}

	if data.Settings != nil {
		if _, err := service.NewSiteSettingService(gdb).Update(ctx, actor, service.SiteSettingsInput{
			BusinessName: data.Settings.BusinessName,
			Phone:        data.Settings.Phone,
			Email:        data.Settings.Email,
			Address:      data.Settings.Address,
		}); err != nil {
			return report, fmt.Errorf("seed settings: %w", err)
		}
		report.SettingsUpdated = true
	}

	return report, nil
}
