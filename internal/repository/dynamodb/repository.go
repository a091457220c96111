package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/domain"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/repository"
)

// DynamoAPI is the subset of the DynamoDB client the repository uses
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Repository implements repository.EventRepository for DynamoDB
type Repository struct {
	api   DynamoAPI
	table string
	log   *zap.Logger
}

// NewRepository creates a new DynamoDB repository
func NewRepository(api DynamoAPI, table string, log *zap.Logger) *Repository {
	return &Repository{
		api:   api,
		table: table,
		log:   log,
	}
}

// Create persists a new event record
func (r *Repository) Create(ctx context.Context, event *domain.Event) error {
	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put event: %w", err)
	}

	return nil
}

// GetByID performs a point lookup by event ID
func (r *Repository) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       eventKey(eventID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}

	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}

	var event domain.Event
	if err := attributevalue.UnmarshalMap(out.Item, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event %s: %w", eventID, err)
	}

	return &event, nil
}

// List scans the table with the equality filters pushed server-side, then
// applies the substring search and sorts by createdAt descending. The search
// predicate is not indexable by DynamoDB, so it runs over the already
// filtered set instead of forcing a full-table scan per query.
func (r *Repository) List(ctx context.Context, filter repository.ListFilter) ([]*domain.Event, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	}

	if cond, ok := buildFilterCondition(filter); ok {
		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build filter expression: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	events := make([]*domain.Event, 0)
	for {
		out, err := r.api.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan events: %w", err)
		}

		var page []*domain.Event
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal events: %w", err)
		}
		events = append(events, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	if filter.Search != "" {
		events = searchEvents(events, filter.Search)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	return events, nil
}

// Update applies the patch fields to an existing event and returns the
// post-update record. Only fields present in the patch are written;
// updatedAt is refreshed on every call.
func (r *Repository) Update(ctx context.Context, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	update := expression.Set(expression.Name("updatedAt"), expression.Value(time.Now().UTC()))

	if patch.Title != nil {
		update = update.Set(expression.Name("title"), expression.Value(*patch.Title))
	}
	if patch.Description != nil {
		update = update.Set(expression.Name("description"), expression.Value(*patch.Description))
	}
	if patch.Category != nil {
		update = update.Set(expression.Name("category"), expression.Value(*patch.Category))
	}
	if patch.Date != nil {
		update = update.Set(expression.Name("date"), expression.Value(*patch.Date))
	}
	if patch.Location != nil {
		update = update.Set(expression.Name("location"), expression.Value(*patch.Location))
	}
	if patch.City != nil {
		update = update.Set(expression.Name("city"), expression.Value(*patch.City))
	}
	if patch.TicketsSold != nil {
		update = update.Set(expression.Name("ticketsSold"), expression.Value(*patch.TicketsSold))
	}
	if patch.TotalTickets != nil {
		update = update.Set(expression.Name("totalTickets"), expression.Value(*patch.TotalTickets))
	}
	if patch.Revenue != nil {
		update = update.Set(expression.Name("revenue"), expression.Value(*patch.Revenue))
	}
	if patch.Status != nil {
		update = update.Set(expression.Name("status"), expression.Value(*patch.Status))
	}
	if patch.ImageURL != nil {
		update = update.Set(expression.Name("imageUrl"), expression.Value(*patch.ImageURL))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("eventId"))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	out, err := r.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       eventKey(eventID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update event %s: %w", eventID, err)
	}

	var event domain.Event
	if err := attributevalue.UnmarshalMap(out.Attributes, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated event %s: %w", eventID, err)
	}

	return &event, nil
}

// Delete removes an event record
func (r *Repository) Delete(ctx context.Context, eventID string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name("eventId"))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build delete condition: %w", err)
	}

	_, err = r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.table),
		Key:                      eventKey(eventID),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}

	return nil
}

// BatchUpdateStatus fans out one update per ID and waits for all of them.
// Not atomic: updates that succeeded before a failure stay applied.
func (r *Repository) BatchUpdateStatus(ctx context.Context, eventIDs []string, status domain.Status) error {
	return r.fanOut(ctx, eventIDs, "update status", func(ctx context.Context, id string) error {
		_, err := r.Update(ctx, id, domain.EventPatch{Status: &status})
		return err
	})
}

// BatchDelete fans out one delete per ID, with the same partial-failure
// semantics as BatchUpdateStatus.
func (r *Repository) BatchDelete(ctx context.Context, eventIDs []string) error {
	return r.fanOut(ctx, eventIDs, "delete", r.Delete)
}

func (r *Repository) fanOut(ctx context.Context, eventIDs []string, op string, fn func(context.Context, string) error) error {
	if len(eventIDs) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(eventIDs))

	for _, id := range eventIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := fn(ctx, id); err != nil {
				r.log.Warn("Batch operation failed for event",
					zap.String("operation", op),
					zap.String("event_id", id),
					zap.Error(err))
				errCh <- fmt.Errorf("%s %s: %w", op, id, err)
			}
		}(id)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Statistics fetches the full listing and reduces it client-side. O(n) per
// call; fine at current table sizes.
func (r *Repository) Statistics(ctx context.Context) (*repository.Statistics, error) {
	events, err := r.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list events for statistics: %w", err)
	}

	stats := &repository.Statistics{TotalEvents: len(events)}
	for _, event := range events {
		stats.TotalRevenue += event.Revenue
		stats.TotalTicketsSold += event.TicketsSold
		switch event.Status {
		case domain.StatusActive:
			stats.ActiveEvents++
		case domain.StatusPending:
			stats.PendingEvents++
		}
	}

	return stats, nil
}

// Ping checks if the events table is reachable
func (r *Repository) Ping(ctx context.Context) error {
	_, err := r.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return fmt.Errorf("failed to describe table %s: %w", r.table, err)
	}
	return nil
}

func eventKey(eventID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"eventId": &types.AttributeValueMemberS{Value: eventID},
	}
}

func buildFilterCondition(filter repository.ListFilter) (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder

	if filter.Status != "" {
		conds = append(conds, expression.Name("status").Equal(expression.Value(filter.Status)))
	}
	if filter.Category != "" {
		conds = append(conds, expression.Name("category").Equal(expression.Value(filter.Category)))
	}
	if filter.UserID != "" {
		conds = append(conds, expression.Name("userId").Equal(expression.Value(filter.UserID)))
	}

	if len(conds) == 0 {
		return expression.ConditionBuilder{}, false
	}

	cond := conds[0]
	for _, c := range conds[1:] {
		cond = cond.And(c)
	}
	return cond, true
}

// searchEvents keeps events where any of title, organizer, location or city
// contains the term, case-insensitively.
func searchEvents(events []*domain.Event, term string) []*domain.Event {
	term = strings.ToLower(term)
	matched := make([]*domain.Event, 0, len(events))
	for _, event := range events {
		if strings.Contains(strings.ToLower(event.Title), term) ||
			strings.Contains(strings.ToLower(event.Organizer), term) ||
			strings.Contains(strings.ToLower(event.Location), term) ||
			strings.Contains(strings.ToLower(event.City), term) {
			matched = append(matched, event)
		}
	}
	return matched
}
