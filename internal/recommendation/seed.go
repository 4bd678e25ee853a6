package recommendation

// Seed returns the fixed recommendation list shown before any generation
// call: seven open action items and the implemented history.
func Seed() []Recommendation {
	return []Recommendation{
		{
			ID:                         "rec-1",
			Title:                      "Create Data Security Policies for Sensitive Data",
			Description:                "Define and apply data security policies in Prisma Cloud to monitor and protect sensitive data (e.g., PII, financial data) stored in S3 buckets and other cloud storage services.",
			Rationale:                  "Proactively identifies and prevents data exfiltration and unauthorized access to critical business data, which is a primary target for attackers.",
			ImplementationInstructions: "1. Navigate to 'Data Security' in Prisma Cloud.\n2. Create a new policy and select data profiles (e.g., PCI, HIPAA).\n3. Apply the policy to the relevant cloud accounts and storage assets.\n4. Configure alerting for policy violations.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortMedium,
			Status:                     StatusPending,
			DeploymentIncrease:         Float(3),
			ScaleOptimizeIncrease:      Float(5),
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "rec-2",
			Title:                      "Review and Restrict Overly Permissive IAM Roles",
			Description:                "Audit IAM roles for wildcard permissions (e.g., '*:*') and excessive privileges. Replace them with roles that follow the principle of least privilege.",
			Rationale:                  "Overly permissive roles increase the blast radius of a compromised identity, allowing attackers to move laterally and access more resources than necessary.",
			ImplementationInstructions: "1. Use Prisma Cloud's IAM security capabilities to identify over-privileged roles.\n2. Analyze the 'Permissions' tab for each role to understand its usage.\n3. Create new, more restrictive policies based on actual usage.\n4. Attach the new policies and detach the old ones.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortMedium,
			Status:                     StatusPending,
			DeploymentIncrease:         Float(4),
			ScaleOptimizeIncrease:      Float(2),
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "rec-3",
			Title:                      "Integrate Cortex XDR with Prisma Cloud for Contextual Alerts",
			Description:                "Connect your Cortex XDR instance with Prisma Cloud to enrich cloud security alerts with endpoint and network telemetry.",
			Rationale:                  "Integration provides a unified view of threats, correlating suspicious activity from endpoints to cloud workloads, which enables faster and more accurate incident response.",
			ImplementationInstructions: "1. In Prisma Cloud, go to Settings > Integrations.\n2. Select Cortex XDR and provide your API key and instance details.\n3. Enable alert forwarding to Cortex XDR.",
			RiskLevel:                  RiskMedium,
			Effort:                     EffortLow,
			Status:                     StatusPending,
			DeploymentIncrease:         Float(1),
			ScaleOptimizeIncrease:      Float(3),
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "rec-4",
			Title:                      "Enable Web Application and API Security (WAAS)",
			Description:                "Deploy Prisma Cloud's WAAS to protect your public-facing web applications and APIs from common exploits like the OWASP Top 10.",
			Rationale:                  "Web applications are a primary attack vector. WAAS provides a critical defense layer against application-level attacks that traditional network firewalls may miss.",
			ImplementationInstructions: "1. In Prisma Cloud, navigate to Compute > Defend > WAAS.\n2. Create a new WAAS policy for your web applications.\n3. Deploy the Prisma Cloud Defender on the hosts or containers running your applications and apply the policy.",
			RiskLevel:                  RiskCritical,
			Effort:                     EffortHigh,
			Status:                     StatusPending,
			DeploymentIncrease:         Float(7),
			ScaleOptimizeIncrease:      Float(5),
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "rec-5",
			Title:                      "Configure Anomaly Detection Policies",
			Description:                "Set up anomaly detection policies in Prisma Cloud to identify unusual user behavior, network traffic, and compute provisioning activities.",
			Rationale:                  "Detecting anomalous behavior can be an early indicator of a security breach or compromised account, even when specific threat signatures are not present.",
			ImplementationInstructions: "1. In Prisma Cloud, go to 'Investigate'.\n2. Use RQL to build queries that establish a baseline of normal activity.\n3. Create 'Anomaly' policies based on these queries under Policies > Alert Policies.",
			RiskLevel:                  RiskMedium,
			Effort:                     EffortMedium,
			Status:                     StatusPending,
			DeploymentIncrease:         Float(4),
			ScaleOptimizeIncrease:      Float(4),
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "rec-6",
			Title:                      "Implement Code Security Scanning in CI/CD Pipeline",
			Description:                "Integrate Prisma Cloud's Code Security module with your source code repositories (e.g., GitHub, GitLab) to scan for vulnerabilities and misconfigurations before deployment.",
			Rationale:                  "Shifting security left by finding and fixing issues early in the development lifecycle is more efficient and reduces the number of vulnerabilities reaching production.",
			ImplementationInstructions: "1. Go to Application Security > Code Security.\n2. Connect your SCM repository.\n3. Configure automated scans on pull requests and commits.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortMedium,
			Status:                     StatusPending,
			DeploymentIncrease:         Float(6),
			ScaleOptimizeIncrease:      Float(3),
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "rec-7",
			Title:                      "Set up a Vulnerability Management Workflow",
			Description:                "Establish a clear process for triaging, assigning, and remediating vulnerabilities discovered by Prisma Cloud's host, container, and serverless function scanning.",
			Rationale:                  "A defined workflow ensures that vulnerabilities are addressed in a timely manner according to their severity, preventing a backlog of unpatched risks from accumulating.",
			ImplementationInstructions: "1. Define SLAs for different vulnerability severity levels (e.g., Critical: 7 days, High: 30 days).\n2. Use integrations with ticketing systems like Jira to automatically create remediation tasks.\n3. Use Prisma Cloud's dashboards to track remediation progress.",
			RiskLevel:                  RiskMedium,
			Effort:                     EffortLow,
			Status:                     StatusPending,
			DeploymentIncrease:         Float(2),
			ScaleOptimizeIncrease:      Float(1),
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "impl-1",
			Title:                      "Enable Unified Audit Logs",
			Description:                "Enable unified audit logging across all Prisma Cloud accounts to ensure comprehensive visibility into user activities and system changes.",
			Rationale:                  "Centralized logging is crucial for forensic analysis and compliance auditing.",
			ImplementationInstructions: "1. Navigate to Settings > Audit Logs.\n2. Enable \"Unified Audit Logging\".\n3. Configure the S3 bucket destination for log archival.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortLow,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(3),
			ScaleOptimizeIncrease:      Float(2),
			ImplementedOn:              "2024-07-10",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-2",
			Title:                      "Deploy Cortex XDR Agents to Prod",
			Description:                "Install Cortex XDR agents on all production Linux servers to ensure runtime protection against malware and exploits.",
			Rationale:                  "Runtime protection is essential for defending against zero-day attacks and lateral movement within the production environment.",
			ImplementationInstructions: "1. In Cortex XDR, go to Endpoints > Agent Installations.\n2. Create a new installation package for Linux.\n3. Deploy using the provided shell script via your orchestration tool (e.g., Ansible, Terraform).",
			RiskLevel:                  RiskCritical,
			Effort:                     EffortMedium,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(6),
			ScaleOptimizeIncrease:      Float(3),
			ImplementedOn:              "2024-07-08",
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "impl-3",
			Title:                      "Configure Cloud Discovery",
			Description:                "Set up Cloud Discovery in Prisma Cloud to automatically detect and monitor unprotected cloud assets.",
			Rationale:                  "Shadow IT and unmanaged resources pose a significant security risk. Automatic discovery ensures all assets are accounted for.",
			ImplementationInstructions: "1. Go to Compute > Manage > Cloud Accounts.\n2. Add your AWS and Azure root accounts.\n3. Enable \"Discovery\" mode.",
			RiskLevel:                  RiskMedium,
			Effort:                     EffortLow,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(4),
			ScaleOptimizeIncrease:      Float(2),
			ImplementedOn:              "2024-07-05",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-4",
			Title:                      "Enforce MFA for Console Access",
			Description:                "Mandate Multi-Factor Authentication (MFA) for all users accessing the Prisma Cloud console to prevent unauthorized access.",
			Rationale:                  "MFA adds a critical layer of security, protecting against compromised credentials.",
			ImplementationInstructions: "1. Go to Settings > Access Control > SSO.\n2. Enable \"Require MFA for all users\".\n3. Configure IDP integration if using SSO.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortLow,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(2),
			ScaleOptimizeIncrease:      Float(2),
			ImplementedOn:              "2024-07-02",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-5",
			Title:                      "Remediate High Severity Image Vulnerabilities",
			Description:                "Patched all container images in the production registry with high severity CVEs.",
			Rationale:                  "Reducing the attack surface by patching known vulnerabilities prevents exploitation in runtime environments.",
			ImplementationInstructions: "1. Identify images with high severity CVEs in Compute > Vulnerabilities.\n2. Apply vendor patches.\n3. Redeploy updated images to the registry.",
			RiskLevel:                  RiskCritical,
			Effort:                     EffortHigh,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(7),
			ScaleOptimizeIncrease:      Float(4),
			ImplementedOn:              "2024-06-28",
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "impl-6",
			Title:                      "Disable Unused Security Groups",
			Description:                "Identified and removed security groups that are not attached to any instances or network interfaces.",
			Rationale:                  "Unused security groups clutter the environment and can be inadvertently attached to resources, opening unintended access paths.",
			ImplementationInstructions: "1. Run RQL query to find unused security groups.\n2. Review the list for false positives.\n3. Delete security groups via Cloud Provider console.",
			RiskLevel:                  RiskMedium,
			Effort:                     EffortLow,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(3),
			ScaleOptimizeIncrease:      Float(1),
			ImplementedOn:              "2024-06-25",
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "impl-7",
			Title:                      "Configure Network Segmentation Policies",
			Description:                "Implemented microsegmentation policies to restrict lateral movement between workloads in the cloud environment.",
			Rationale:                  "Network segmentation limits the blast radius of a breach by preventing attackers from moving freely between systems.",
			ImplementationInstructions: "1. Map application dependencies.\n2. Create identity-based segmentation policies in Prisma Cloud.\n3. Deploy in monitor mode first, then enforce.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortHigh,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(5),
			ScaleOptimizeIncrease:      Float(4),
			ImplementedOn:              "2024-06-20",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-8",
			Title:                      "Enable Runtime Protection for Containers",
			Description:                "Activated runtime defense policies to detect and prevent malicious activities within running containers.",
			Rationale:                  "Runtime protection catches threats that evade static scanning, including zero-day exploits and fileless malware.",
			ImplementationInstructions: "1. Navigate to Compute > Defend > Runtime.\n2. Create runtime rules for container behavior.\n3. Enable blocking mode for high-confidence detections.",
			RiskLevel:                  RiskCritical,
			Effort:                     EffortMedium,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(6),
			ScaleOptimizeIncrease:      Float(3),
			ImplementedOn:              "2024-06-18",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-9",
			Title:                      "Integrate SIEM with Cortex XSOAR",
			Description:                "Connected existing SIEM infrastructure with Cortex XSOAR for automated alert enrichment and response.",
			Rationale:                  "SIEM integration enables centralized visibility and automated playbook execution for faster incident response.",
			ImplementationInstructions: "1. Configure SIEM integration in XSOAR.\n2. Map alert fields to XSOAR incident types.\n3. Create automated enrichment playbooks.",
			RiskLevel:                  RiskMedium,
			Effort:                     EffortMedium,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(4),
			ScaleOptimizeIncrease:      Float(4),
			ImplementedOn:              "2024-06-15",
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "impl-10",
			Title:                      "Deploy Host Vulnerability Scanning",
			Description:                "Enabled continuous vulnerability scanning for all EC2 instances and virtual machines across cloud accounts.",
			Rationale:                  "Continuous scanning ensures new vulnerabilities are detected promptly as they are disclosed.",
			ImplementationInstructions: "1. Deploy Prisma Cloud Defenders on hosts.\n2. Configure vulnerability scanning schedules.\n3. Set up alerting thresholds for severity levels.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortLow,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(4),
			ScaleOptimizeIncrease:      Float(2),
			ImplementedOn:              "2024-06-12",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-11",
			Title:                      "Implement Secrets Scanning in Repositories",
			Description:                "Configured automated scanning for exposed secrets and credentials in source code repositories.",
			Rationale:                  "Secrets in code are a common attack vector. Early detection prevents credential exposure in production.",
			ImplementationInstructions: "1. Go to Application Security > Secrets.\n2. Connect code repositories.\n3. Enable pre-commit hooks for real-time detection.",
			RiskLevel:                  RiskCritical,
			Effort:                     EffortLow,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(3),
			ScaleOptimizeIncrease:      Float(2),
			ImplementedOn:              "2024-06-08",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-12",
			Title:                      "Configure Alert Fatigue Reduction",
			Description:                "Tuned alert policies and implemented alert grouping to reduce noise and prioritize actionable findings.",
			Rationale:                  "Alert fatigue leads to missed critical alerts. Proper tuning ensures analysts focus on real threats.",
			ImplementationInstructions: "1. Review alert volume and false positive rates.\n2. Adjust policy thresholds.\n3. Enable alert grouping and deduplication.",
			RiskLevel:                  RiskMedium,
			Effort:                     EffortMedium,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(2),
			ScaleOptimizeIncrease:      Float(3),
			ImplementedOn:              "2024-06-05",
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "impl-13",
			Title:                      "Enable Cloud Infrastructure Entitlement Management",
			Description:                "Deployed CIEM capabilities to monitor and right-size cloud permissions across AWS and Azure.",
			Rationale:                  "Excessive permissions are a leading cause of cloud breaches. CIEM ensures least-privilege access.",
			ImplementationInstructions: "1. Enable IAM Security in Prisma Cloud.\n2. Run permissions analysis.\n3. Generate and apply right-sized policies.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortHigh,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(5),
			ScaleOptimizeIncrease:      Float(4),
			ImplementedOn:              "2024-06-01",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-14",
			Title:                      "Set Up Automated Compliance Reporting",
			Description:                "Configured automated compliance reports for SOC 2, PCI-DSS, and HIPAA frameworks.",
			Rationale:                  "Automated reporting reduces manual effort and ensures continuous compliance monitoring.",
			ImplementationInstructions: "1. Navigate to Compliance > Reports.\n2. Select required compliance frameworks.\n3. Schedule weekly report generation and distribution.",
			RiskLevel:                  RiskLow,
			Effort:                     EffortLow,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(3),
			ScaleOptimizeIncrease:      Float(3),
			ImplementedOn:              "2024-05-28",
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "impl-15",
			Title:                      "Deploy Threat Intelligence Feeds",
			Description:                "Integrated external threat intelligence feeds with Cortex XSIAM for enhanced threat detection and context.",
			Rationale:                  "Threat intelligence enriches alerts with IOCs and TTPs, enabling faster identification of known threats.",
			ImplementationInstructions: "1. Navigate to Threat Intelligence > Feeds.\n2. Configure premium and open-source feeds.\n3. Map indicators to detection rules.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortMedium,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(4),
			ScaleOptimizeIncrease:      Float(3),
			ImplementedOn:              "2024-05-25",
			ApplicableProduct:          "XSIAM",
		},
		{
			ID:                         "impl-16",
			Title:                      "Configure Data Loss Prevention Policies",
			Description:                "Implemented DLP policies to detect and prevent unauthorized data exfiltration across cloud storage and endpoints.",
			Rationale:                  "DLP protects sensitive data from accidental or malicious exposure, reducing compliance and reputational risks.",
			ImplementationInstructions: "1. Define sensitive data patterns and classifications.\n2. Create DLP policies in Data Security.\n3. Enable alerting and blocking for policy violations.",
			RiskLevel:                  RiskCritical,
			Effort:                     EffortHigh,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(4),
			ScaleOptimizeIncrease:      Float(3),
			ImplementedOn:              "2024-05-20",
			ApplicableProduct:          "Cortex Cloud",
		},
		{
			ID:                         "impl-17",
			Title:                      "Enable Identity Analytics",
			Description:                "Activated identity analytics to detect suspicious user behavior and compromised credentials across cloud environments.",
			Rationale:                  "Identity-based attacks are a leading cause of breaches. Analytics detect anomalous access patterns early.",
			ImplementationInstructions: "1. Enable Identity Security module.\n2. Configure baseline behavior learning.\n3. Set up alerts for anomalous activities.",
			RiskLevel:                  RiskHigh,
			Effort:                     EffortLow,
			Status:                     StatusApproved,
			DeploymentIncrease:         Float(2),
			ScaleOptimizeIncrease:      Float(3),
			ImplementedOn:              "2024-05-15",
			ApplicableProduct:          "Cortex Cloud",
		},
	}
}
