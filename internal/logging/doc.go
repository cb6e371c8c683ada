// Package logging provides structured logging for Cerebro.
//
// The terminal UI owns stdout, so logs go to a JSON-lines file under the data
// directory ({data-dir}/logs/cerebro.log), rotated by size with lumberjack.
//
// # Basic Usage
//
//	logger, err := logging.New(logging.Options{
//	    Dir:      filepath.Join(dataDir, "logs"),
//	    Level:    "INFO",
//	    Rotation: logging.DefaultRotationConfig(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	log := logger.WithComponent("coach")
//	log.Warn("capability failed, using fallback", "error", err)
//
// # Conventions
//
// Validation and capacity rejections are user input outcomes and are logged
// at DEBUG at most. Capability failures log at WARN because a fallback always
// covers them. Persistence failures log at ERROR.
//
// # Reading Logs
//
// [ReadEntries], [FilterLogs] and [WriteEntries] back the "cerebro logs"
// command:
//
//	entries, err := logging.ReadEntries(path)
//	entries = logging.FilterLogs(entries, logging.LogFilter{Level: "WARN"})
//	err = logging.WriteEntries(os.Stdout, entries, "text")
package logging
