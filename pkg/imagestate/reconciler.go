// Copyright 2019 Yunion
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package imagestate reconciles declared image specs against an image
// catalog service: look up current state, issue at most one corrective
// action, poll the asynchronous backend to a terminal outcome, and report
// a tri-valued result with a human-readable diff.
package imagestate

import (
	"time"

	"yunion.io/x/glancestate/pkg/util/waitutils"
)

// SReconciler runs desired-state convergence against one backend. It is
// synchronous and single-threaded; concurrent invocations against the same
// image name are the caller's responsibility.
type SReconciler struct {
	backend Backend

	// test enables dry-run mode: no create or update call is ever issued
	// and "would be false" results are reported as unknown.
	test bool

	interval time.Duration
	timeout  time.Duration
	clock    waitutils.Clock
}

func NewReconciler(backend Backend) *SReconciler {
	return &SReconciler{
		backend:  backend,
		interval: waitutils.DefaultInterval,
		timeout:  waitutils.DefaultTimeout,
		clock:    waitutils.DefaultClock,
	}
}

func (rec *SReconciler) SetTest(test bool) *SReconciler {
	rec.test = test
	return rec
}

func (rec *SReconciler) SetTimeout(timeout time.Duration) *SReconciler {
	rec.timeout = timeout
	return rec
}

func (rec *SReconciler) SetInterval(interval time.Duration) *SReconciler {
	rec.interval = interval
	return rec
}

func (rec *SReconciler) SetClock(clock waitutils.Clock) *SReconciler {
	rec.clock = clock
	return rec
}
