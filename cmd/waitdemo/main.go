// waitdemo exercises the waitable package from the command line: a
// manual-event start gate with a wait-for-all barrier, a semaphore-bounded
// worker pool, and a wait-for-one race between workers.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/richinsley/waitable"
)

var log zerolog.Logger

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:           "waitdemo",
		Short:         "Demonstrations of waitable events, semaphores and multi-waits",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(gateCmd(), permitsCmd(), raceCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// gateCmd holds workers on a manual-reset start gate, then waits for all of
// their auto-reset done events with WaitForAll.
func gateCmd() *cobra.Command {
	var workers int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Release workers through a manual-event gate and barrier on their completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			gate, err := waitable.NewManualEvent(false, "")
			if err != nil {
				return err
			}
			defer gate.Close()

			done := make([]waitable.Waitable, workers)
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				ev, err := waitable.NewAutoEvent(false, "")
				if err != nil {
					return err
				}
				defer ev.Close()
				done[i] = ev

				wg.Add(1)
				go func(id int, ev *waitable.Event) {
					defer wg.Done()
					if err := gate.WaitIndefinitely(); err != nil {
						log.Error().Err(err).Int("worker", id).Msg("gate wait failed")
						return
					}
					d := time.Duration(rand.Intn(200)) * time.Millisecond
					log.Debug().Int("worker", id).Dur("work", d).Msg("released")
					time.Sleep(d)
					if err := ev.Set(); err != nil {
						log.Error().Err(err).Int("worker", id).Msg("done signal failed")
					}
				}(i, ev)
			}

			log.Info().Int("workers", workers).Msg("opening gate")
			if err := gate.Set(); err != nil {
				return err
			}

			res, err := waitable.WaitForAll(done, timeout)
			if err != nil {
				return err
			}
			log.Info().Stringer("result", res).Msg("barrier")
			wg.Wait()
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of workers")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "barrier timeout")
	return cmd
}

// permitsCmd bounds concurrent workers with a counting semaphore and shows
// the overflow rejection at the end.
func permitsCmd() *cobra.Command {
	var permits, workers int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "permits",
		Short: "Bound concurrent workers with a counting semaphore",
		RunE: func(cmd *cobra.Command, args []string) error {
			sem, err := waitable.NewSemaphore(permits, permits, "")
			if err != nil {
				return err
			}
			defer sem.Close()

			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					res, err := sem.Wait(timeout)
					if err != nil {
						log.Error().Err(err).Int("worker", id).Msg("acquire failed")
						return
					}
					if res == waitable.TimedOut {
						log.Warn().Int("worker", id).Msg("no permit within timeout")
						return
					}
					log.Debug().Int("worker", id).Msg("permit acquired")
					time.Sleep(time.Duration(50+rand.Intn(100)) * time.Millisecond)
					if _, err := sem.IncrementOne(); err != nil {
						log.Error().Err(err).Int("worker", id).Msg("release failed")
					}
				}(i)
			}
			wg.Wait()

			// All permits are back; one more release must overflow.
			if _, err := sem.IncrementOne(); errors.Is(err, waitable.ErrSemaphoreOverflow) {
				log.Info().Msg("semaphore full, extra release rejected")
			} else if err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&permits, "permits", "p", 2, "permit count")
	cmd.Flags().IntVarP(&workers, "workers", "w", 8, "number of workers")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 2*time.Second, "acquire timeout")
	return cmd
}

// raceCmd starts workers that each set their own auto-reset event and uses
// WaitForOne to report finishing order.
func raceCmd() *cobra.Command {
	var workers int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "race",
		Short: "Report worker finishing order with wait-for-one",
		RunE: func(cmd *cobra.Command, args []string) error {
			finish := make([]waitable.Waitable, workers)
			for i := 0; i < workers; i++ {
				ev, err := waitable.NewAutoEvent(false, "")
				if err != nil {
					return err
				}
				defer ev.Close()
				finish[i] = ev
			}

			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					time.Sleep(time.Duration(rand.Intn(500)) * time.Millisecond)
					if err := finish[id].(*waitable.Event).Set(); err != nil {
						log.Error().Err(err).Int("worker", id).Msg("finish signal failed")
					}
				}(i)
			}

			for place := 1; place <= workers; place++ {
				res, idx, err := waitable.WaitForOne(finish, timeout)
				if err != nil {
					return err
				}
				if res == waitable.MultiTimedOut {
					log.Warn().Int("place", place).Msg("no finisher within timeout")
					break
				}
				log.Info().Int("place", place).Int("worker", idx).Msg("finished")
			}
			wg.Wait()
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of workers")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 2*time.Second, "per-place timeout")
	return cmd
}
