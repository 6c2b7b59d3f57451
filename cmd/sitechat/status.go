package main

import (
	"fmt"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/rag"
	"github.com/harshydav08/sitechat/yaml"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	st := deps.Service.Status(deps.Ctx)

	fmt.Fprintf(deps.Stdout, "Status:            %s\n", st.Status)
	if st.Error != "" {
		fmt.Fprintf(deps.Stdout, "Error:             %s\n", st.Error)
	}
	if st.Collection != nil {
		fmt.Fprintf(deps.Stdout, "Collection:        %s (%d chunks)\n", st.Collection.Name, st.Collection.TotalChunks)
		fmt.Fprintf(deps.Stdout, "Location:          %s\n", st.Collection.Location)
	}
	fmt.Fprintf(deps.Stdout, "Embedding model:   %s\n", st.EmbeddingModel)
	fmt.Fprintf(deps.Stdout, "Generation model:  %s\n", st.GenerationModel)
	fmt.Fprintf(deps.Stdout, "Chunking:          %d chars, %d overlap\n", st.ChunkSize, st.ChunkOverlap)
	fmt.Fprintf(deps.Stdout, "Retrieval:         top %d, threshold %.2f\n", st.TopK, st.SimilarityThreshold)
	fmt.Fprintf(deps.Stdout, "Max pages:         %d\n", st.MaxPages)
	fmt.Fprintf(deps.Stdout, "Sessions:          %d (%d messages)\n", st.Memory.TotalSessions, st.Memory.TotalMessages)

	if st.Status != rag.StatusHealthy {
		return sitechat.Errorf(sitechat.EUNAVAILABLE, "%s", st.Error)
	}
	return nil
}

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm removal\n")
		return sitechat.Errorf(sitechat.EINVALID, "use --force to confirm removal")
	}
	if err := deps.Service.ClearDatabase(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Cleared all indexed content")
	return nil
}

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	v := deps.Validator.Validate(deps.Ctx, c.URL)
	if !v.Valid {
		fmt.Fprintf(deps.Stdout, "invalid: %s\n", v.Reason)
		return sitechat.Errorf(sitechat.EINVALID, "%s", v.Reason)
	}
	fmt.Fprintf(deps.Stdout, "valid: %s\n", v.URL)
	return nil
}

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	data, err := yaml.Marshal(deps.Config)
	if err != nil {
		return err
	}
	if _, err := deps.Stdout.Write(data); err != nil {
		return err
	}
	if c.Save {
		if err := yaml.Save(deps.ConfigPath, deps.Config); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(deps.Stderr, "saved %s\n", deps.ConfigPath)
	}
	return nil
}
