package draws

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/latent-labs/lsalign/internal/procrustes"
)

// AuditRecord captures the transformation fitted for one chain so an
// alignment run can be audited and reproduced.
type AuditRecord struct {
	ChainID     int         `json:"chain_id"`
	Status      string      `json:"status"`
	Scale       float64     `json:"scale,omitempty"`
	Rotation    [][]float64 `json:"rotation,omitempty"`
	Translation []float64   `json:"translation,omitempty"`
	Disparity   float64     `json:"disparity"`
	Error       string      `json:"error,omitempty"`
}

func NewAuditRecord(chainID int, res procrustes.DrawResult) AuditRecord {
	rec := AuditRecord{
		ChainID:   chainID,
		Status:    string(res.Status),
		Disparity: res.Disparity,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	if t := res.Transform; t != nil {
		rec.Scale = t.Scale
		rows, cols := t.Rotation.Dims()
		rec.Rotation = make([][]float64, rows)
		for i := 0; i < rows; i++ {
			rec.Rotation[i] = make([]float64, cols)
			for j := 0; j < cols; j++ {
				rec.Rotation[i][j] = t.Rotation.At(i, j)
			}
		}
		rec.Translation = append([]float64(nil), t.Translation...)
	}
	return rec
}

// WriteAudit serializes the per-chain audit trail as JSON.
func WriteAudit(path string, records []AuditRecord) error {
	data, err := sonic.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal audit records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write audit file: %w", err)
	}
	return nil
}

// ReadAudit loads a previously written audit trail.
func ReadAudit(path string) ([]AuditRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audit file: %w", err)
	}
	var records []AuditRecord
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal audit records: %w", err)
	}
	return records, nil
}
