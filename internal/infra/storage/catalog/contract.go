package catalog

import "github.com/kar1timmins/DineLocal/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
