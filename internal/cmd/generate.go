package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"terrainforge/internal/checkpoint"
	"terrainforge/internal/imageio"
	"terrainforge/internal/params"
	"terrainforge/internal/pipeline"
	"terrainforge/internal/raster"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a terrain map from a parameter document",
	Long: `generate runs the full terrain synthesis pipeline (heightmap
synthesis, hydraulic erosion, stratum quantization, cliff masking, river
and pool hydrology, upscaling, waterfall detection) and writes the
resulting raster layers as PNGs to the resolved output directory.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("parameters", "generation_parameters.json", "Path to the parameter document")
	generateCmd.Flags().Bool("debug", false, "Enable checkpointing of intermediate stage outputs (_debug.enabled override)")
	generateCmd.Flags().Int("resume-step", 0, "Resume from this completed stage id instead of a cold start (_debug.step override)")
	generateCmd.Flags().String("debug-name", "", "Generation id override, used for the output folder and checkpoint database (_debug.name override)")

	bindFlags := []struct{ key, flag string }{
		{"generate.parameters", "parameters"},
		{"generate.debug", "debug"},
		{"generate.resume_step", "resume-step"},
		{"generate.debug_name", "debug-name"},
	}
	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, generateCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	parametersPath := viper.GetString("generate.parameters")
	debugOverride := cmd.Flags().Changed("debug")
	resumeOverride := cmd.Flags().Changed("resume-step")
	nameOverride := cmd.Flags().Changed("debug-name")

	p, err := params.Load(parametersPath)
	if err != nil {
		return fmt.Errorf("load parameters: %w", err)
	}

	if debugOverride {
		p.Debug.Enabled = viper.GetBool("generate.debug")
	}
	if resumeOverride {
		p.Debug.Step = viper.GetInt("generate.resume_step")
	}
	if nameOverride {
		p.Debug.Name = viper.GetString("generate.debug_name")
	}

	genID := p.GenerationID()
	outputDir := p.ResolveOutputPath(genID)
	logger.Info("starting generation", "generation_id", genID, "output", outputDir, "seed", p.Seed)

	var store *checkpoint.Store
	if p.Debug.Enabled {
		store, err = checkpoint.Open(outputDir + "/checkpoint.sqlite")
		if err != nil {
			return fmt.Errorf("open checkpoint store: %w", err)
		}
		defer store.Close()
	}

	mgr := checkpoint.NewManager(store, checkpoint.Stage(p.Debug.Step), logger)

	rm, err := pipeline.Run(context.Background(), p, mgr, logger)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := exportLayers(outputDir, rm); err != nil {
		return fmt.Errorf("export layers: %w", err)
	}

	logger.Info("generation complete", "generation_id", genID, "output", outputDir)
	return nil
}

// exportLayers writes every raster layer of rm as a greyscale PNG.
func exportLayers(dir string, rm *raster.RawMap) error {
	layers := []struct {
		name string
		grid *raster.FloatGrid
	}{
		{"heightmap", rm.Heightmap},
		{"stratums", rm.Stratums},
		{"rivermap", rm.Rivermap},
		{"poolmap", rm.Poolmap},
		{"waterfallmap", rm.Waterfallmap},
	}

	for _, l := range layers {
		img, err := imageio.Greyscale(l.grid)
		if err != nil {
			return fmt.Errorf("render %s: %w", l.name, err)
		}
		if err := imageio.WritePNG(dir+"/"+l.name+".png", img); err != nil {
			return fmt.Errorf("write %s: %w", l.name, err)
		}
	}

	cliffsGrid := raster.NewFloatGrid(rm.Cliffs.W, rm.Cliffs.H)
	for y := 0; y < rm.Cliffs.H; y++ {
		for x := 0; x < rm.Cliffs.W; x++ {
			cliffsGrid.Set(x, y, float64(rm.Cliffs.At(x, y)))
		}
	}
	img, err := imageio.Greyscale(cliffsGrid)
	if err != nil {
		return fmt.Errorf("render cliffs: %w", err)
	}
	return imageio.WritePNG(dir+"/cliffs.png", img)
}
