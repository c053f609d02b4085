/*
Package tracker runs WARC tracker checks for web archive collections against a tracker worksheet
stored in Google Sheets.

warc-tracker-sheets can be used from the command line but is really intended to be run from a cron job
to check a set of collections and record the outcome of each run in a log worksheet.

warc-tracker-sheets supports the following commands:

  - check, to run the tracker check for a single collection (--collection-id) or a comma
    separated list of collections (--collection-ids)
  - authorise, to authorise application access to the Google Sheets spreadsheet
  - get, to download a Google Sheets worksheet as a TSV file
  - put, to store a TSV file to a Google Sheets worksheet
  - rename, to rename a spreadsheet or worksheet
  - find, to find the cells in a worksheet range that contain some text
  - version, to display the current version
*/
package tracker
