package gcp

import (
	"context"
	"fmt"
	"strings"

	securitycenter "cloud.google.com/go/securitycenter/apiv1"
	"cloud.google.com/go/securitycenter/apiv1/securitycenterpb"
	"google.golang.org/api/iterator"

	"github.com/lvonguyen/cspm-advisor/internal/posture"
)

// activeFilter selects active findings with Critical/High/Medium severity
const activeFilter = `state="ACTIVE" AND (severity="CRITICAL" OR severity="HIGH" OR severity="MEDIUM")`

// SCCProvider queries findings from GCP Security Command Center
type SCCProvider struct {
	client *securitycenter.Client
	orgID  string
}

// NewSCCProvider creates a new Security Command Center provider
func NewSCCProvider(ctx context.Context, orgID string) (*SCCProvider, error) {
	client, err := securitycenter.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create SCC client: %w", err)
	}

	return &SCCProvider{
		client: client,
		orgID:  orgID,
	}, nil
}

// GetFindings retrieves active findings from Security Command Center
func (p *SCCProvider) GetFindings(ctx context.Context) ([]posture.Finding, error) {
	var findings []posture.Finding

	req := &securitycenterpb.ListFindingsRequest{
		Parent: fmt.Sprintf("organizations/%s/sources/-", p.orgID),
		Filter: activeFilter,
	}

	it := p.client.ListFindings(ctx, req)
	for {
		result, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate findings: %w", err)
		}
		findings = append(findings, normalize(result.GetFinding()))
	}

	return findings, nil
}

// normalize converts a GCP SCC finding
func normalize(f *securitycenterpb.Finding) posture.Finding {
	finding := posture.Finding{
		FindingID:   f.GetName(),
		CSP:         "gcp",
		Title:       f.GetCategory(),
		Description: f.GetDescription(),
		Severity:    posture.NormalizeSeverity(f.GetSeverity().String()),
		Status:      f.GetState().String(),
		ResourceID:  f.GetResourceName(),
		AccountID:   extractProjectID(f.GetResourceName()),
		ControlID:   f.GetCategory(),
		Standard:    "SCC",
	}
	finding.FindingIDShort = posture.GenerateShortID(finding.CSP, finding.AccountID, finding.ControlID, finding.ResourceID)
	return finding
}

// Close closes the SCC client
func (p *SCCProvider) Close() error {
	return p.client.Close()
}

// Name returns the provider name
func (p *SCCProvider) Name() string {
	return "gcp-scc"
}

// extractProjectID extracts project ID from a resource name such as
// //compute.googleapis.com/projects/{project-id}/zones/... Names without a
// projects segment are returned unchanged.
func extractProjectID(resourceName string) string {
	parts := strings.Split(resourceName, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "projects" && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	return resourceName
}
