// internal/adapters/out/firestore/activity_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nftminter/internal/domain/activity"
)

// ActivityRepositoryFS stores activities in the "activities" collection, one document per ID.
type ActivityRepositoryFS struct {
	client *firestore.Client
}

var _ activity.RepositoryPort = (*ActivityRepositoryFS)(nil)

func NewActivityRepositoryFS(client *firestore.Client) *ActivityRepositoryFS {
	return &ActivityRepositoryFS{client: client}
}

type activityDoc struct {
	ID          string     `firestore:"id"`
	Kind        string     `firestore:"kind"`
	MintAddress string     `firestore:"mintAddress"`
	FromWallet  string     `firestore:"fromWallet"`
	ToWallet    string     `firestore:"toWallet"`
	Name        string     `firestore:"name"`
	URI         string     `firestore:"uri"`
	Signature   *string    `firestore:"signature"`
	Status      string     `firestore:"status"`
	ErrorType   *string    `firestore:"errorType"`
	ErrorMsg    *string    `firestore:"errorMsg"`
	CreatedAt   time.Time  `firestore:"createdAt"`
	UpdatedAt   *time.Time `firestore:"updatedAt"`
}

func (r *ActivityRepositoryFS) collection() *firestore.CollectionRef {
	return r.client.Collection("activities")
}

func (r *ActivityRepositoryFS) Save(ctx context.Context, a activity.Activity) error {
	id := strings.TrimSpace(a.ID)
	if id == "" {
		return activity.ErrInvalidID
	}
	_, err := r.collection().Doc(id).Set(ctx, toActivityDoc(a))
	return err
}

func (r *ActivityRepositoryFS) GetByID(ctx context.Context, id string) (*activity.Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, activity.ErrNotFound
	}
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, activity.ErrNotFound
		}
		return nil, err
	}
	var d activityDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	if strings.TrimSpace(d.ID) == "" {
		d.ID = snap.Ref.ID
	}
	a := fromActivityDoc(d)
	return &a, nil
}

// List applies equality filters server-side except Wallet, which spans two fields
// and is matched after the fetch.
func (r *ActivityRepositoryFS) List(ctx context.Context, filter activity.Filter, limit int) ([]activity.Activity, error) {
	q := r.collection().Query
	if filter.MintAddress != nil {
		q = q.Where("mintAddress", "==", *filter.MintAddress)
	}
	if filter.Kind != nil {
		q = q.Where("kind", "==", string(*filter.Kind))
	}
	if filter.Status != nil {
		q = q.Where("status", "==", string(*filter.Status))
	}
	q = q.OrderBy("createdAt", firestore.Desc)
	if limit > 0 && filter.Wallet == nil {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []activity.Activity
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d activityDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		if strings.TrimSpace(d.ID) == "" {
			d.ID = snap.Ref.ID
		}
		a := fromActivityDoc(d)
		if !filter.Matches(a) {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func toActivityDoc(a activity.Activity) activityDoc {
	d := activityDoc{
		ID:          strings.TrimSpace(a.ID),
		Kind:        string(a.Kind),
		MintAddress: a.MintAddress,
		FromWallet:  a.FromWallet,
		ToWallet:    a.ToWallet,
		Name:        a.Name,
		URI:         a.URI,
		Signature:   a.Signature,
		Status:      string(a.Status),
		ErrorMsg:    a.ErrorMsg,
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt,
	}
	if a.ErrorType != nil {
		s := string(*a.ErrorType)
		d.ErrorType = &s
	}
	return d
}

func fromActivityDoc(d activityDoc) activity.Activity {
	a := activity.Activity{
		ID:          strings.TrimSpace(d.ID),
		Kind:        activity.Kind(d.Kind),
		MintAddress: d.MintAddress,
		FromWallet:  d.FromWallet,
		ToWallet:    d.ToWallet,
		Name:        d.Name,
		URI:         d.URI,
		Signature:   d.Signature,
		Status:      activity.Status(d.Status),
		ErrorMsg:    d.ErrorMsg,
		CreatedAt:   d.CreatedAt.UTC(),
	}
	if d.ErrorType != nil {
		et := activity.ErrorType(*d.ErrorType)
		a.ErrorType = &et
	}
	if d.UpdatedAt != nil {
		u := d.UpdatedAt.UTC()
		a.UpdatedAt = &u
	}
	return a
}
