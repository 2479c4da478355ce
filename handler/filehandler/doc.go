// Package filehandler provides the file output handler that routes
// formatted records to one of three destinations and applies
// size-triggered rotation before each write.
//
// Records at WARNING or FATAL go to <base>.wf, STATISTIC records go to
// <base>.st, and everything else goes to <base>. When MaxFileSize is
// positive and a destination has grown past it, the file is deleted and
// the next append starts it over. Nothing is renamed or archived.
//
// All file-system access goes through the Storage interface. The default
// implementation wraps an afero.Fs, so tests run against an in-memory
// file system.
package filehandler
