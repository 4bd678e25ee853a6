package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/securityhub"
	"github.com/aws/aws-sdk-go-v2/service/securityhub/types"

	"github.com/lvonguyen/cspm-advisor/internal/posture"
)

// findingsAPI is the subset of the Security Hub client used here.
type findingsAPI interface {
	securityhub.GetFindingsAPIClient
}

// SecurityHubProvider queries findings from AWS Security Hub
type SecurityHubProvider struct {
	client    findingsAPI
	accountID string
}

// NewSecurityHubProvider creates a new Security Hub provider
func NewSecurityHubProvider(cfg aws.Config, accountID string) *SecurityHubProvider {
	return &SecurityHubProvider{
		client:    securityhub.NewFromConfig(cfg),
		accountID: accountID,
	}
}

// NewSecurityHubProviderFromEnv loads the default AWS credential chain.
func NewSecurityHubProviderFromEnv(ctx context.Context, region, accountID string) (*SecurityHubProvider, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewSecurityHubProvider(cfg, accountID), nil
}

// GetFindings retrieves active findings from Security Hub
func (p *SecurityHubProvider) GetFindings(ctx context.Context) ([]posture.Finding, error) {
	var findings []posture.Finding

	// Filter for active findings with Critical/High/Medium severity
	filters := &types.AwsSecurityFindingFilters{
		WorkflowStatus: []types.StringFilter{
			{Value: aws.String("NEW"), Comparison: types.StringFilterComparisonEquals},
			{Value: aws.String("NOTIFIED"), Comparison: types.StringFilterComparisonEquals},
		},
		RecordState: []types.StringFilter{
			{Value: aws.String("ACTIVE"), Comparison: types.StringFilterComparisonEquals},
		},
		SeverityLabel: []types.StringFilter{
			{Value: aws.String("CRITICAL"), Comparison: types.StringFilterComparisonEquals},
			{Value: aws.String("HIGH"), Comparison: types.StringFilterComparisonEquals},
			{Value: aws.String("MEDIUM"), Comparison: types.StringFilterComparisonEquals},
		},
	}
	if p.accountID != "" {
		filters.AwsAccountId = []types.StringFilter{
			{Value: aws.String(p.accountID), Comparison: types.StringFilterComparisonEquals},
		}
	}

	paginator := securityhub.NewGetFindingsPaginator(p.client, &securityhub.GetFindingsInput{
		Filters:    filters,
		MaxResults: aws.Int32(100),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get findings page: %w", err)
		}

		for _, f := range page.Findings {
			findings = append(findings, normalize(f))
		}
	}

	return findings, nil
}

// normalize converts an AWS Security Hub finding
func normalize(f types.AwsSecurityFinding) posture.Finding {
	finding := posture.Finding{
		FindingID:   aws.ToString(f.Id),
		CSP:         "aws",
		Title:       aws.ToString(f.Title),
		Description: aws.ToString(f.Description),
		AccountID:   aws.ToString(f.AwsAccountId),
		Region:      aws.ToString(f.Region),
		Status:      "ACTIVE",
	}
	if f.Severity != nil {
		finding.Severity = posture.NormalizeSeverity(string(f.Severity.Label))
	}

	// Extract resource ID
	if len(f.Resources) > 0 {
		finding.ResourceID = aws.ToString(f.Resources[0].Id)
	}

	// Prefer the security control; fall back to the generator ID
	if f.Compliance != nil && f.Compliance.SecurityControlId != nil {
		finding.ControlID = aws.ToString(f.Compliance.SecurityControlId)
	} else {
		finding.ControlID = aws.ToString(f.GeneratorId)
	}
	finding.Standard = "FSBP"

	finding.FindingIDShort = posture.GenerateShortID(finding.CSP, finding.AccountID, finding.ControlID, finding.ResourceID)
	return finding
}

// Name returns the provider name
func (p *SecurityHubProvider) Name() string {
	return "aws-securityhub"
}
