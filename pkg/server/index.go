package server

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Raspberry Pi Camera Stream</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
        }
        .header {
            text-align: center;
            margin-bottom: 20px;
        }
        .video-container {
            background-color: #ddd;
            padding: 10px;
            border-radius: 5px;
            margin-bottom: 20px;
            text-align: center;
        }
        .video-stream {
            max-width: 100%;
            border: 1px solid #999;
        }
        .controls {
            background-color: white;
            padding: 20px;
            border-radius: 5px;
            margin-bottom: 20px;
        }
        .status {
            margin-top: 20px;
            padding: 15px;
            background-color: white;
            border-radius: 5px;
        }
        label {
            display: block;
            margin-bottom: 5px;
            font-weight: bold;
        }
        select, input {
            width: 100%;
            padding: 8px;
            margin-bottom: 15px;
            border: 1px solid #ddd;
            border-radius: 4px;
        }
        button {
            background-color: #4CAF50;
            color: white;
            padding: 10px 15px;
            border: none;
            border-radius: 4px;
            cursor: pointer;
            margin-right: 10px;
            margin-bottom: 10px;
        }
        button:hover {
            background-color: #45a049;
        }
        .snapshot-btn {
            background-color: #2196F3;
        }
        .snapshot-btn:hover {
            background-color: #0b7dda;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        table, th, td {
            border: 1px solid #ddd;
        }
        th, td {
            padding: 8px;
            text-align: left;
        }
        th {
            background-color: #f2f2f2;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Raspberry Pi Camera Stream</h1>
        </div>

        <div class="video-container">
            <img src="/stream" class="video-stream" alt="Camera Stream">
        </div>

        <div class="controls">
            <h2>Camera Controls</h2>
            <form action="/connect" method="post" id="camera-form">
                <label for="device">Camera Device:</label>
                <select name="device" id="device">
                    {{range .Devices}}
                    <option value="{{.}}">{{.}}</option>
                    {{end}}
                </select>

                <label for="fourcc">Format (FOURCC):</label>
                <select name="fourcc" id="fourcc">
                    <option value="BGR3">BGR3 (BGR 24-bit)</option>
                    <option value="YV12">YV12 (YUV 12-bit)</option>
                    <option value="MJPG">MJPG (Motion JPEG)</option>
                    <option value="YUYV">YUYV (YUV 4:2:2)</option>
                    <option value="">Default format</option>
                </select>

                <label for="width">Width:</label>
                <input type="number" name="width" id="width" placeholder="e.g., 640">

                <label for="height">Height:</label>
                <input type="number" name="height" id="height" placeholder="e.g., 480">

                <button type="submit">Connect Camera</button>
                <a href="/snapshot"><button type="button" class="snapshot-btn">Take Snapshot</button></a>
            </form>
        </div>

        <div class="status">
            <h2>Camera Status</h2>
            <p><strong>Status:</strong> {{.StatusText}}</p>

            {{if .Status.Connected}}
            <table>
                <tr>
                    <th>Property</th>
                    <th>Value</th>
                </tr>
                <tr>
                    <td>Resolution</td>
                    <td>{{.Status.Width}} x {{.Status.Height}}</td>
                </tr>
                <tr>
                    <td>FPS</td>
                    <td>{{.Status.FPS}}</td>
                </tr>
                <tr>
                    <td>Format</td>
                    <td>{{.Status.Format}}</td>
                </tr>
            </table>
            {{end}}
        </div>
    </div>

    <script>
        document.getElementById('camera-form').addEventListener('submit', function(e) {
            e.preventDefault();

            // Get form data
            const formData = new FormData(this);

            // Submit form via AJAX
            fetch('/connect', {
                method: 'POST',
                body: formData
            })
            .then(response => response.text())
            .then(data => {
                alert(data);
                location.reload();
            })
            .catch(error => {
                console.error('Error:', error);
                alert('Failed to connect to camera');
            });
        });
    </script>
</body>
</html>
`
