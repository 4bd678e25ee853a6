package azure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"

	"github.com/lvonguyen/cspm-advisor/internal/posture"
)

// defenderQuery selects unhealthy security assessments via Resource Graph
const defenderQuery = `
	securityresources
	| where type == "microsoft.security/assessments"
	| where properties.status.code == "Unhealthy"
	| where properties.metadata.severity in ("High", "Medium", "Low")
	| project
		id,
		name,
		subscriptionId,
		resourceGroup,
		severity = tostring(properties.metadata.severity),
		title = tostring(properties.displayName),
		description = tostring(properties.metadata.description),
		resourceId = tostring(properties.resourceDetails.Id),
		control = tostring(properties.metadata.assessmentKey),
		standard = tostring(properties.metadata.policyDefinitionId)
`

// graphAPI is the subset of the Resource Graph client used here.
type graphAPI interface {
	Resources(ctx context.Context, query armresourcegraph.QueryRequest, options *armresourcegraph.ClientResourcesOptions) (armresourcegraph.ClientResourcesResponse, error)
}

// DefenderProvider queries findings from Azure Defender for Cloud
type DefenderProvider struct {
	client         graphAPI
	subscriptionID string
}

// NewDefenderProvider creates a new Defender for Cloud provider
func NewDefenderProvider(cred azcore.TokenCredential, subscriptionID string) (*DefenderProvider, error) {
	client, err := armresourcegraph.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource graph client: %w", err)
	}

	return &DefenderProvider{
		client:         client,
		subscriptionID: subscriptionID,
	}, nil
}

// NewDefenderProviderFromEnv uses the default Azure credential chain.
func NewDefenderProviderFromEnv(subscriptionID string) (*DefenderProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure credential: %w", err)
	}
	return NewDefenderProvider(cred, subscriptionID)
}

// GetFindings retrieves unhealthy assessments from Defender for Cloud
func (p *DefenderProvider) GetFindings(ctx context.Context) ([]posture.Finding, error) {
	var findings []posture.Finding

	query := defenderQuery
	subscriptions := []*string{&p.subscriptionID}

	result, err := p.client.Resources(ctx, armresourcegraph.QueryRequest{
		Query:         &query,
		Subscriptions: subscriptions,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query resource graph: %w", err)
	}

	// Parse results
	if result.Data != nil {
		data, ok := result.Data.([]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected result format")
		}

		for _, item := range data {
			row, ok := item.(map[string]interface{})
			if !ok {
				continue
			}

			finding := posture.Finding{
				FindingID:   getString(row, "id"),
				CSP:         "azure",
				Title:       getString(row, "title"),
				Description: getString(row, "description"),
				Severity:    posture.NormalizeSeverity(getString(row, "severity")),
				Status:      "ACTIVE",
				ResourceID:  getString(row, "resourceId"),
				AccountID:   getString(row, "subscriptionId"),
				ControlID:   getString(row, "control"),
				Standard:    getString(row, "standard"),
			}
			finding.FindingIDShort = posture.GenerateShortID(finding.CSP, finding.AccountID, finding.ControlID, finding.ResourceID)

			findings = append(findings, finding)
		}
	}

	return findings, nil
}

// Name returns the provider name
func (p *DefenderProvider) Name() string {
	return "azure-defender"
}

// getString safely extracts a string from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Try JSON marshal for complex types
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return ""
}
