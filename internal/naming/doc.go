// Package naming derives every path a customization file needs from its
// name: the language suffix, the localized master, the output file and the
// intermediate files. All functions are pure; nothing touches the file
// system.
//
// A customization file is named <templateID><suffix><templateExt> and lives
// in the folder <inputRoot>/<templateID>. For template "Hello":
//
//	Input/Hello/Hello.xml        -> Master.xslt        -> Output/Hello/Hello.html
//	Input/Hello/Hello-en_us.xml  -> Master-en_us.xslt  -> Output/Hello/Hello-en_us.html
package naming
