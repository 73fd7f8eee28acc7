package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heimdex/heimdex-media-contracts/internal/cloud"
	"github.com/heimdex/heimdex-media-contracts/internal/config"
	"github.com/heimdex/heimdex-media-contracts/internal/export"
	"github.com/heimdex/heimdex-media-contracts/internal/faces"
	"github.com/heimdex/heimdex-media-contracts/internal/ingest"
	"github.com/heimdex/heimdex-media-contracts/internal/pipeline"
	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

func newProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <input.json>...",
		Short: "Merge one or more videos' pipeline outputs into scene documents and shorts candidates",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runProcess,
	}
	cmd.Flags().String("out", "", "Output file (default stdout)")
	cmd.Flags().Int("shorts", -1, "Shorts candidates per video (default from profile)")
	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	shortsN, _ := cmd.Flags().GetInt("shorts")

	inputs := make([]pipeline.VideoInput, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		in, err := pipeline.ParseVideoInput(data)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if cmd.Flags().Changed("shorts") {
			n := shortsN
			in.ShortsTarget = &n
		}
		inputs = append(inputs, in)
	}

	results, err := pipeline.ProcessBatch(cmd.Context(), pipeline.NewProcessor(e.profile, e.logger), inputs, e.cfg.BatchConcurrency())
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if len(results) == 1 {
		return writeJSON(cmd, out, results[0])
	}
	return writeJSON(cmd, out, results)
}

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <clips.json>",
		Short: "Render an EDL or FCPXML timeline from clips or a processed video",
		Long: "The input is an export request ({\"clips\": [...]}) or, with --from, " +
			"the output of the process command.",
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
	cmd.Flags().String("format", string(export.FormatEDL), "Timeline format: edl or fcpxml")
	cmd.Flags().String("title", "", "Project title (default from input, then "+export.DefaultProjectName+")")
	cmd.Flags().Float64("fps", 0, "Frame rate (default from input, then HEIMDEX_EXPORT_FRAME_RATE)")
	cmd.Flags().String("from", "", "Treat input as a processed video and export its scenes or shorts")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(args[0]), err)
	}

	var req export.Request
	from, _ := cmd.Flags().GetString("from")
	switch from {
	case "":
		if err := schema.Decode(data, &req, schema.Lenient); err != nil {
			return err
		}
	case "scenes", "shorts":
		var res pipeline.VideoResult
		if err := schema.Decode(data, &res, schema.Lenient); err != nil {
			return err
		}
		if from == "scenes" {
			req.Clips = pipeline.SceneClips(res)
		} else {
			req.Clips = pipeline.CandidateClips(res)
		}
		req.ProjectName = res.VideoID + "_" + from
	default:
		return schema.InvalidArgument("--from must be scenes or shorts, got %q", from)
	}

	if title, _ := cmd.Flags().GetString("title"); title != "" {
		req.ProjectName = title
	}
	if fps, _ := cmd.Flags().GetFloat64("fps"); fps != 0 {
		req.FrameRate = fps
	}
	if req.FrameRate == 0 {
		req.FrameRate = e.cfg.ExportFrameRate()
	}

	projectName := export.ProjectName(req.ProjectName)
	doc, err := export.Render(format, export.SanitizeClips(req.Clips), projectName, req.FrameRate)
	if err != nil {
		return err
	}
	e.logger.Debug("timeline rendered", "format", string(format), "clips", len(req.Clips), "frame_rate", req.FrameRate)

	out, _ := cmd.Flags().GetString("out")
	return writeOutput(cmd, out, []byte(doc))
}

func newSampleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print face-sampling timestamps for a video",
		Args:  cobra.NoArgs,
		RunE:  runSample,
	}
	cmd.Flags().Float64("duration", 0, "Video duration in seconds")
	cmd.Flags().Float64("fps", 0, "Uniform sampling rate (default from profile)")
	cmd.Flags().Float64Slice("boundary", nil, "Scene boundary in seconds; repeatable")
	cmd.Flags().Float64("window", -1, "Boundary window in seconds (default from profile)")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func runSample(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	duration, _ := cmd.Flags().GetFloat64("duration")
	boundaries, _ := cmd.Flags().GetFloat64Slice("boundary")

	fps := e.profile.Sampling.FPS
	if cmd.Flags().Changed("fps") {
		fps, _ = cmd.Flags().GetFloat64("fps")
	}
	window := e.profile.Sampling.BoundaryWindowS
	if cmd.Flags().Changed("window") {
		window, _ = cmd.Flags().GetFloat64("window")
	}

	ts, err := faces.SampleTimestamps(duration, fps, boundaries, window)
	if err != nil {
		return err
	}
	return writeJSON(cmd, "", ts)
}

func newIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <result.json>",
		Short: "Convert a processed video into a validated scene ingestion request",
		Long: `Convert a processed video into a validated scene ingestion request.

The target library comes from --library-id, then HEIMDEX_CLOUD_LIBRARY_ID,
then --library resolved by name. With --push the request is sent to
HEIMDEX_CLOUD_BASE_URL and the backend's answer is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
	cmd.Flags().String("library-id", "", "Target library UUID")
	cmd.Flags().String("library", "", "Target library name, created when missing")
	cmd.Flags().String("source", string(ingest.SourceGDrive), "Source type: gdrive, removable_disk or local")
	cmd.Flags().Bool("push", false, "Send the request to the search backend")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	source, _ := cmd.Flags().GetString("source")
	if !ingest.SourceType(source).Valid() {
		return schema.InvalidArgument("--source must be gdrive, removable_disk or local, got %q", source)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(args[0]), err)
	}
	var res pipeline.VideoResult
	if err := schema.Decode(data, &res, schema.Lenient); err != nil {
		return err
	}
	if err := res.CheckComplete(); err != nil {
		return err
	}

	client := cloud.New(e.cfg.CloudBaseURL(), e.cfg.CloudToken(), e.cfg.CloudOrgSlug(), e.logger)
	libraryID, err := resolveLibrary(cmd, e, client)
	if err != nil {
		return err
	}

	req, err := pipeline.ToIngestRequest(res, libraryID, ingest.SourceType(source))
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if push, _ := cmd.Flags().GetBool("push"); !push {
		return writeJSON(cmd, out, req)
	}
	result, err := client.UploadScenes(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("push %s: %w", req.VideoID, err)
	}
	return writeJSON(cmd, out, result)
}

func resolveLibrary(cmd *cobra.Command, e *env, client cloud.Client) (uuid.UUID, error) {
	id, _ := cmd.Flags().GetString("library-id")
	if id == "" {
		id = e.cfg.CloudLibraryID()
	}
	if id != "" {
		libraryID, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, schema.InvalidArgument("library id must be a UUID: %v", err)
		}
		return libraryID, nil
	}

	name, _ := cmd.Flags().GetString("library")
	if name == "" {
		return uuid.Nil, schema.InvalidArgument("one of --library-id, %s or --library is required", config.EnvCloudLibraryID)
	}
	lib, err := client.Libraries().GetOrCreate(cmd.Context(), name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve library %q: %w", name, err)
	}
	e.logger.Debug("library resolved", "name", lib.Name, "library_id", lib.ID, "created", lib.Created)
	return lib.ID, nil
}

func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return writeOutput(cmd, path, append(data, '\n'))
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
