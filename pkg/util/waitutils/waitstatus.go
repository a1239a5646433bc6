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

package waitutils

import (
	"time"

	"yunion.io/x/pkg/errors"
)

const ErrTimeout = errors.Error("timeout")

const (
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = 30 * time.Second
)

// Clock abstracts wall-clock time so poll loops can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type sRealClock struct{}

func (sRealClock) Now() time.Time {
	return time.Now()
}

func (sRealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

var DefaultClock Clock = sRealClock{}

// Wait invokes callback every interval until it reports done, returns an
// error, or the timeout budget is exhausted. The backend exposes no push
// notifications, so deliberate polling is the only option.
func Wait(clock Clock, interval time.Duration, timeout time.Duration, callback func() (bool, error)) error {
	startTime := clock.Now()
	for clock.Now().Sub(startTime) < timeout {
		done, err := callback()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		clock.Sleep(interval)
	}
	return ErrTimeout
}
