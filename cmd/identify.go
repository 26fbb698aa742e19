package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bnema/motorsense/internal/adapters/render/terminal"
	"github.com/bnema/motorsense/internal/application"
	"github.com/spf13/cobra"
)

// maxImageBytes matches what the web upload form accepts.
const maxImageBytes = 10 << 20

func newIdentifyCmd(app *app) *cobra.Command {
	var (
		vehicleType string
		imagePath   string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Identify a vehicle part from a photo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(format); err != nil {
				return err
			}

			var image []byte
			if imagePath != "" {
				info, err := os.Stat(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				if info.Size() > maxImageBytes {
					return fmt.Errorf("image %s is larger than %d MiB", imagePath, maxImageBytes>>20)
				}
				image, err = os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
			}

			result, err := app.identifyService(app.toasts(cmd.ErrOrStderr())).Identify(cmd.Context(), application.IdentifyCommand{
				VehicleType: vehicleType,
				Filename:    filepath.Base(imagePath),
				ContentType: http.DetectContentType(image),
				Image:       image,
			})
			if err != nil {
				return err
			}

			return writeOutput(cmd, format, result, func() (string, error) {
				return terminal.RenderIdentification(result)
			})
		},
	}

	cmd.Flags().StringVar(&vehicleType, "type", "", "Vehicle type: car or bike")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a photo of the part")
	addOutputFlag(cmd, &format)
	return cmd
}
