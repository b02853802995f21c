package kintai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"
)

type Repository interface {
	ListRecords() ([]Record, error)
	SaveRecord(r Record) error

	GetSlackConfig() (SlackConfig, error)
	SaveSlackConfig(c SlackConfig) error
}

const (
	recordKeyPrefix = "record:"
	slackConfigKey  = "slack_config"

	recordIndex = "records"
)

func NewRepository(db *buntdb.DB) (Repository, error) {
	// buntdb indexes live in memory, so rebuild on every open. Ordering by
	// the clockIn field keeps ListRecords chronological.
	if err := db.ReplaceIndex(recordIndex, recordKeyPrefix+"*", buntdb.IndexJSON("clockIn")); err != nil {
		return nil, storeErr(err)
	}
	return &repository{db: db}, nil
}

type repository struct {
	db *buntdb.DB
}

func (r *repository) ListRecords() ([]Record, error) {
	var records []Record
	err := r.db.View(func(tx *buntdb.Tx) error {
		var innerErr error
		err := tx.Ascend(recordIndex, func(key, value string) bool {
			var rec Record
			if innerErr = json.Unmarshal([]byte(value), &rec); innerErr != nil {
				return false
			}
			records = append(records, rec)
			return true
		})
		if err != nil {
			return err
		}
		return innerErr
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return records, nil
}

func (r *repository) SaveRecord(rec Record) error {
	bs, err := json.Marshal(rec)
	if err != nil {
		return storeErr(err)
	}
	err = r.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(recordKeyPrefix+rec.ID, string(bs), nil)
		return err
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *repository) GetSlackConfig() (SlackConfig, error) {
	var c SlackConfig
	err := r.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(slackConfigKey)
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		return json.Unmarshal([]byte(v), &c)
	})
	if err != nil {
		return SlackConfig{}, storeErr(err)
	}
	return c, nil
}

func (r *repository) SaveSlackConfig(c SlackConfig) error {
	bs, err := json.Marshal(c)
	if err != nil {
		return storeErr(err)
	}
	err = r.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(slackConfigKey, string(bs), nil)
		return err
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
