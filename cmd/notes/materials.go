package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/models"
	"github.com/spf13/cobra"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var filter models.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List materials, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				if err := e.catalog.Refresh(cmd.Context()); err != nil {
					return err
				}

				views := toViews(e.catalog.View(filter), e.viewerID())
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), views)
				}
				return writeMaterialList(cmd.OutOrStdout(), views)
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "search subject, title and uploader name")
	cmd.Flags().StringVar(&filter.Branch, "branch", "", "branch filter")
	cmd.Flags().StringVar(&filter.Module, "module", "", "module filter")
	cmd.Flags().StringVar(&filter.Semester, "semester", "", "semester filter")

	return cmd
}

func newShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show material details",
		Args:  requireExactlyArgs(1, "id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				material, err := e.app.Materials.FetchOne(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				view := models.NewMaterialView(*material, e.viewerID())
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), view)
				}
				return writeMaterialDetail(cmd.OutOrStdout(), view)
			})
		},
	}
}

func newShareCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Print the share links of a material",
		Args:  requireExactlyArgs(1, "id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				material, err := e.app.Materials.FetchOne(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				links := e.app.Materials.Share(material)
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), links)
				}
				return writePlain(cmd.OutOrStdout(), "link: %s\nwhatsapp: %s\n", links.CopyLink, links.WhatsAppLink)
			})
		},
	}
}

func newUploadCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		filePath string
		form     models.UploadForm
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a material",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath != "" {
				file, err := os.Open(filePath)
				if err != nil {
					return fmt.Errorf("failed to open file: %w", err)
				}
				defer file.Close()

				info, err := file.Stat()
				if err != nil {
					return fmt.Errorf("failed to stat file: %w", err)
				}

				form.File = &models.UploadFile{
					Name:        filepath.Base(filePath),
					ContentType: mime.TypeByExtension(filepath.Ext(filePath)),
					Size:        info.Size(),
					Content:     file,
				}
			}

			return withEnv(cmd.Context(), cfg, func(e *env) error {
				material, err := e.app.Uploads.Upload(cmd.Context(), e.session.Identity(), &form)
				if err != nil {
					return err
				}

				view := models.NewMaterialView(*material, material.UserID)
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), view)
				}
				return writePlain(cmd.OutOrStdout(), "uploaded %s\n%s\n", view.ID, view.FileURL)
			})
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "file to upload")
	cmd.Flags().StringVar(&form.Title, "title", "", "title")
	cmd.Flags().StringVar(&form.Branch, "branch", "", "branch")
	cmd.Flags().StringVar(&form.Subject, "subject", "", "subject")
	cmd.Flags().StringVar(&form.Semester, "semester", "", "semester")
	cmd.Flags().StringVar(&form.Module, "module", "", "module")
	cmd.Flags().StringVar(&form.CollegeDetails, "college", "", "college details")
	cmd.Flags().StringVar(&form.UploaderName, "uploader", "", "uploader name")

	return cmd
}

func newDeleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your materials",
		Args:  requireExactlyArgs(1, "id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				identity, err := e.requireIdentity()
				if err != nil {
					return err
				}

				material, err := e.app.Materials.FetchOne(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !material.IsOwnedBy(identity.ID) {
					return errNotOwner
				}

				if err := e.app.Materials.Delete(cmd.Context(), identity, material); err != nil {
					return err
				}
				e.catalog.Remove(material.ID)

				return writePlain(cmd.OutOrStdout(), "deleted %s\n", material.ID)
			})
		},
	}
}

func toViews(materials []models.Material, viewerID string) []models.MaterialView {
	views := make([]models.MaterialView, 0, len(materials))
	for _, m := range materials {
		views = append(views, models.NewMaterialView(m, viewerID))
	}
	return views
}
