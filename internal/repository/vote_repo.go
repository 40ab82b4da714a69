package repository

import (
	"context"
	"errors"

	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteOutcome is the state after a cast: the target's recomputed vote count
// and the caller's standing vote, nil when the cast toggled it off.
type VoteOutcome struct {
	VoteCount int64
	UserVote  *model.VoteType
}

type VoteRepository interface {
	// Cast runs the full vote transition atomically: vote row
	// create/flip/delete, clamped point apply to the author (skipped for
	// self-votes), and vote count recomputation.
	Cast(ctx context.Context, userID uuid.UUID, targetKind string, targetID uuid.UUID, authorID uuid.UUID, voteType model.VoteType) (*VoteOutcome, error)
	FindUserVote(ctx context.Context, userID uuid.UUID, targetKind string, targetID uuid.UUID) (*model.Vote, error)
	CountForTarget(ctx context.Context, targetKind string, targetID uuid.UUID) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func targetColumn(targetKind string) string {
	if targetKind == "question" {
		return "question_id"
	}
	return "answer_id"
}

func (r *voteRepository) Cast(ctx context.Context, userID uuid.UUID, targetKind string, targetID uuid.UUID, authorID uuid.UUID, voteType model.VoteType) (*VoteOutcome, error) {
	var out VoteOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the author row first so concurrent casts on the same target
		// serialize and the clamp is computed against a consistent balance.
		var author model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&author, "id = ?", authorID).Error; err != nil {
			return err
		}

		col := targetColumn(targetKind)

		var existing []model.Vote
		if err := tx.Where("user_id = ? AND "+col+" = ?", userID, targetID).
			Limit(1).Find(&existing).Error; err != nil {
			return err
		}

		var delta int
		if len(existing) > 0 {
			record := existing[0]
			if record.Type == voteType {
				// Same type cast again: toggle off
				if err := tx.Delete(&record).Error; err != nil {
					return err
				}
				delta = scoring.ToggleDelta(voteType)
				out.UserVote = nil
			} else {
				// Different type: flip in place
				oldType := record.Type
				record.Type = voteType
				if err := tx.Save(&record).Error; err != nil {
					return err
				}
				delta = scoring.SwitchDelta(oldType, voteType)
				v := voteType
				out.UserVote = &v
			}
		} else {
			vote := model.Vote{Type: voteType, UserID: userID}
			if targetKind == "question" {
				vote.QuestionID = &targetID
			} else {
				vote.AnswerID = &targetID
			}

			if err := tx.Create(&vote).Error; err != nil {
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				// Lost a race with a concurrent cast by the same user.
				// The unique index caught it; retry as an update.
				var dup model.Vote
				if err := tx.Where("user_id = ? AND "+col+" = ?", userID, targetID).
					First(&dup).Error; err != nil {
					return err
				}
				delta = scoring.SwitchDelta(dup.Type, voteType)
				dup.Type = voteType
				if err := tx.Save(&dup).Error; err != nil {
					return err
				}
			} else {
				delta = scoring.CastDelta(voteType)
			}
			v := voteType
			out.UserVote = &v
		}

		// Voting on own content never moves the author's points; the vote
		// record itself still changed above.
		if delta != 0 && authorID != userID {
			newPoints := scoring.ApplyDelta(author.Points, delta)
			if err := tx.Model(&model.User{}).Where("id = ?", authorID).
				UpdateColumn("points", newPoints).Error; err != nil {
				return err
			}
		}

		count, err := countVotes(tx, col, targetID)
		if err != nil {
			return err
		}
		out.VoteCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *voteRepository) FindUserVote(ctx context.Context, userID uuid.UUID, targetKind string, targetID uuid.UUID) (*model.Vote, error) {
	var votes []model.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND "+targetColumn(targetKind)+" = ?", userID, targetID).
		Limit(1).Find(&votes).Error
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return nil, nil
	}
	return &votes[0], nil
}

func (r *voteRepository) CountForTarget(ctx context.Context, targetKind string, targetID uuid.UUID) (int64, error) {
	return countVotes(r.db.WithContext(ctx), targetColumn(targetKind), targetID)
}

func countVotes(tx *gorm.DB, col string, targetID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&model.Vote{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE -1 END), 0)", model.VoteTypeUp).
		Where(col+" = ?", targetID).
		Scan(&count).Error
	return count, err
}
