package collector

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	backuptypes "github.com/aws/aws-sdk-go-v2/service/backup/types"
	"github.com/rs/zerolog/log"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

// ListBackupPlans fetches all backup plans with their rules and selections.
// A failing rule or selection sub-fetch degrades that plan's rules or
// selections to empty; the plan entry itself is kept.
func (c *Collector) ListBackupPlans(ctx context.Context) ([]report.BackupPlan, error) {
	var plans []report.BackupPlan
	var nextToken *string

	for {
		output, err := c.backupClient.ListBackupPlans(ctx, &backup.ListBackupPlansInput{NextToken: nextToken})
		if err != nil {
			return plans, fmt.Errorf("list backup plans: %w", err)
		}

		for _, member := range output.BackupPlansList {
			plans = append(plans, c.buildPlan(ctx, member))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return plans, nil
}

func (c *Collector) buildPlan(ctx context.Context, member backuptypes.BackupPlansListMember) report.BackupPlan {
	planID := aws.ToString(member.BackupPlanId)

	plan := report.BackupPlan{
		ID:               planID,
		Name:             stringOrNA(member.BackupPlanName),
		VersionID:        stringOrNA(member.VersionId),
		CreationDate:     aws.ToTime(member.CreationDate).Format(report.TimeLayout),
		DeploymentStatus: stringOrNA(member.DeploymentStatus),
		Rules:            []report.Rule{},
		Selections:       []report.Selection{},
	}

	rules, err := c.fetchRules(ctx, planID)
	if err != nil {
		log.Warn().Err(err).Str("plan_id", planID).Msg("backup plan detail fetch failed, keeping plan without rules")
	} else {
		plan.Rules = rules
	}

	selections, err := c.fetchSelections(ctx, planID)
	if err != nil {
		log.Warn().Err(err).Str("plan_id", planID).Msg("backup selection fetch failed, keeping plan without selections")
	} else {
		plan.Selections = selections
	}

	return plan
}

func (c *Collector) fetchRules(ctx context.Context, planID string) ([]report.Rule, error) {
	output, err := c.backupClient.GetBackupPlan(ctx, &backup.GetBackupPlanInput{
		BackupPlanId: aws.String(planID),
	})
	if err != nil {
		return nil, err
	}

	rules := []report.Rule{}
	if output.BackupPlan == nil {
		return rules, nil
	}
	for _, rule := range output.BackupPlan.Rules {
		rules = append(rules, report.Rule{
			Name:                    stringOrNA(rule.RuleName),
			TargetVault:             stringOrNA(rule.TargetBackupVaultName),
			ScheduleExpression:      stringOrNA(rule.ScheduleExpression),
			StartWindowMinutes:      aws.ToInt64(rule.StartWindowMinutes),
			CompletionWindowMinutes: aws.ToInt64(rule.CompletionWindowMinutes),
			Lifecycle:               convertLifecycle(rule.Lifecycle),
			ContinuousBackup:        aws.ToBool(rule.EnableContinuousBackup),
		})
	}
	return rules, nil
}

func (c *Collector) fetchSelections(ctx context.Context, planID string) ([]report.Selection, error) {
	selections := []report.Selection{}
	var nextToken *string

	for {
		output, err := c.backupClient.ListBackupSelections(ctx, &backup.ListBackupSelectionsInput{
			BackupPlanId: aws.String(planID),
			NextToken:    nextToken,
		})
		if err != nil {
			return nil, err
		}

		for _, member := range output.BackupSelectionsList {
			detail, err := c.backupClient.GetBackupSelection(ctx, &backup.GetBackupSelectionInput{
				BackupPlanId: aws.String(planID),
				SelectionId:  member.SelectionId,
			})
			if err != nil {
				return nil, err
			}
			if detail.BackupSelection == nil {
				continue
			}
			selections = append(selections, convertSelection(detail.BackupSelection))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return selections, nil
}

func convertSelection(sel *backuptypes.BackupSelection) report.Selection {
	resources := []string{}
	resources = append(resources, sel.Resources...)

	return report.Selection{
		Name:       stringOrNA(sel.SelectionName),
		IamRoleArn: stringOrNA(sel.IamRoleArn),
		Resources:  resources,
		Conditions: convertConditions(sel.Conditions),
	}
}

// convertLifecycle flattens the lifecycle settings into the loosely typed
// mapping carried by the report document.
func convertLifecycle(lc *backuptypes.Lifecycle) map[string]any {
	m := map[string]any{}
	if lc == nil {
		return m
	}
	if lc.DeleteAfterDays != nil {
		m["DeleteAfterDays"] = aws.ToInt64(lc.DeleteAfterDays)
	}
	if lc.MoveToColdStorageAfterDays != nil {
		m["MoveToColdStorageAfterDays"] = aws.ToInt64(lc.MoveToColdStorageAfterDays)
	}
	return m
}

func convertConditions(cond *backuptypes.Conditions) map[string]any {
	m := map[string]any{}
	if cond == nil {
		return m
	}
	if params := conditionPairs(cond.StringEquals); len(params) > 0 {
		m["StringEquals"] = params
	}
	if params := conditionPairs(cond.StringNotEquals); len(params) > 0 {
		m["StringNotEquals"] = params
	}
	if params := conditionPairs(cond.StringLike); len(params) > 0 {
		m["StringLike"] = params
	}
	if params := conditionPairs(cond.StringNotLike); len(params) > 0 {
		m["StringNotLike"] = params
	}
	return m
}

func conditionPairs(params []backuptypes.ConditionParameter) map[string]string {
	pairs := make(map[string]string, len(params))
	for _, p := range params {
		pairs[aws.ToString(p.ConditionKey)] = aws.ToString(p.ConditionValue)
	}
	return pairs
}

func stringOrNA(s *string) string {
	if s == nil || *s == "" {
		return report.NotApplicable
	}
	return *s
}
