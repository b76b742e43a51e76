// Package pipeline turns template folders into generated email files.
//
// The batch walks the input root one template folder at a time
// (ListTemplateFolders), lists each folder's customization files
// (ListCandidateFiles), resolves every file to a naming.Unit and hands it to
// the Runner, which executes the stage plan: merge, optional inlining,
// optional cleanup and the final save, with intermediate snapshots where the
// plan asks for them. Processing is strictly sequential.
//
// Failures are isolated per file and per folder. With stop-on-error the
// first failure ends the run; otherwise it is logged and the batch moves on.
package pipeline
